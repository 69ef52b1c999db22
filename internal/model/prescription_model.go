package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Prescription struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	RawText     string         `gorm:"type:text;not null"`
	Source      string         `gorm:"type:varchar(16);not null"`
	Confidence  *float64       `gorm:""`
	Medications datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
