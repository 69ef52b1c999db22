package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db             *gorm.DB
	knowledgeTable string
}

func NewRepositoryFactory(db *gorm.DB, knowledgeTable string) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db:             db,
		knowledgeTable: knowledgeTable,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	// UoW is short lived per request; the context is bound when Begin() runs
	// or passed explicitly to repository calls.
	return NewUnitOfWork(f.db, f.knowledgeTable)
}
