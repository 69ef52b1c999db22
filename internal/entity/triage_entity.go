package entity

import (
	"time"

	"github.com/google/uuid"
)

type SeverityLevel string

const (
	SeverityLow      SeverityLevel = "Low"
	SeverityModerate SeverityLevel = "Moderate"
	SeverityHigh     SeverityLevel = "High"
	SeverityCritical SeverityLevel = "Critical"
)

// SeverityAssessment is computed fresh per chat turn and attached to it. The
// Id doubles as the idempotency key for the history append.
type SeverityAssessment struct {
	Id          uuid.UUID
	Score       float64
	Level       SeverityLevel
	IsEmergency bool
	Condition   *string
	CreatedAt   time.Time
}

// PatientRecord carries the monotonically non-decreasing maximum severity ever
// recorded for a patient.
type PatientRecord struct {
	UserId      uuid.UUID
	MaxSeverity float64
	UpdatedAt   time.Time
}

// ChatTurn is one inbound message plus the generated reply. Never mutated
// after creation.
type ChatTurn struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Query     string
	Context   string
	Reply     string
	Severity  *SeverityAssessment
	CreatedAt time.Time
}
