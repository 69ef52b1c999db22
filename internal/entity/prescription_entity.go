package entity

import (
	"time"

	"github.com/google/uuid"
)

type MedicationTiming string

const (
	TimingMorning       MedicationTiming = "Morning"
	TimingAfternoon     MedicationTiming = "Afternoon"
	TimingNight         MedicationTiming = "Night"
	TimingAsDirected    MedicationTiming = "AsDirected"
	TimingAsPerSchedule MedicationTiming = "AsPerSchedule"
)

// MedicationEntity is one parsed medication line. Dosage falls back to
// "As prescribed" when no numeric dose was found.
type MedicationEntity struct {
	Name   string           `json:"name"`
	Dosage string           `json:"dosage"`
	Timing MedicationTiming `json:"timing"`
}

// Prescription is the persisted result of one upload: the extracted raw text
// plus the medication entities parsed from it.
type Prescription struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	RawText     string
	Source      ExtractionSource
	Confidence  *float64
	Medications []MedicationEntity
	CreatedAt   time.Time
}
