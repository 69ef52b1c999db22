package unitofwork

import (
	"context"

	"ai-medassist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KnowledgeRepository() contract.KnowledgeRepository
	PrescriptionRepository() contract.PrescriptionRepository
	PatientRecordRepository() contract.PatientRecordRepository
	ChatTurnRepository() contract.ChatTurnRepository
}
