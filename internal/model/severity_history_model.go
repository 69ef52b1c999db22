package model

import (
	"time"

	"github.com/google/uuid"
)

// SeverityHistory rows are keyed by the assessment id itself so a retried
// append conflicts and becomes a no-op.
type SeverityHistory struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Condition   *string   `gorm:"type:varchar(255)"`
	Score       float64   `gorm:"not null"`
	Level       string    `gorm:"type:varchar(16);not null"`
	IsEmergency bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (SeverityHistory) TableName() string {
	return "severity_history"
}
