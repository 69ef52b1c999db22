package contract

import (
	"context"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/repository/specification"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prescription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prescription, error)
}
