package unitofwork

import (
	"context"
	"fmt"

	"ai-medassist-be/internal/repository/contract"
	"ai-medassist-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db             *gorm.DB
	knowledgeTable string
	tx             *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB, knowledgeTable string) UnitOfWork {
	return &UnitOfWorkImpl{
		db:             db,
		knowledgeTable: knowledgeTable,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) KnowledgeRepository() contract.KnowledgeRepository {
	return implementation.NewKnowledgeRepository(u.getDB(), u.knowledgeTable)
}

func (u *UnitOfWorkImpl) PrescriptionRepository() contract.PrescriptionRepository {
	return implementation.NewPrescriptionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PatientRecordRepository() contract.PatientRecordRepository {
	return implementation.NewPatientRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatTurnRepository() contract.ChatTurnRepository {
	return implementation.NewChatTurnRepository(u.getDB())
}
