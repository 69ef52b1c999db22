package contract

import (
	"context"

	"ai-medassist-be/internal/entity"

	"github.com/google/uuid"
)

// PatientRecordRepository owns the externally-visible patient history state:
// the monotonic max-severity field and the append-only assessment log.
type PatientRecordRepository interface {
	// MergeMaxSeverity upserts the patient record so that max_severity never
	// decreases. Safe under concurrent writers and idempotent under retries.
	MergeMaxSeverity(ctx context.Context, userId uuid.UUID, score float64) error

	// AppendHistory records one assessment. The assessment id is the primary
	// key, so submitting the same assessment twice is a no-op.
	AppendHistory(ctx context.Context, userId uuid.UUID, assessment *entity.SeverityAssessment) error

	FindOne(ctx context.Context, userId uuid.UUID) (*entity.PatientRecord, error)
	FindHistory(ctx context.Context, userId uuid.UUID) ([]*entity.SeverityAssessment, error)
}
