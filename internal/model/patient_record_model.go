package model

import (
	"time"

	"github.com/google/uuid"
)

type PatientRecord struct {
	UserId      uuid.UUID `gorm:"type:uuid;primaryKey"`
	MaxSeverity float64   `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (PatientRecord) TableName() string {
	return "patient_records"
}
