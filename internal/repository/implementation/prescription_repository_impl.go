package implementation

import (
	"context"
	"errors"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/mapper"
	"ai-medassist-be/internal/model"
	"ai-medassist-be/internal/repository/contract"
	"ai-medassist-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PrescriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PrescriptionMapper
}

func NewPrescriptionRepository(db *gorm.DB) contract.PrescriptionRepository {
	return &PrescriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewPrescriptionMapper(),
	}
}

func (r *PrescriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PrescriptionRepositoryImpl) Create(ctx context.Context, prescription *entity.Prescription) error {
	m := r.mapper.ToModel(prescription)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*prescription = *r.mapper.ToEntity(m)
	return nil
}

func (r *PrescriptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prescription, error) {
	var m model.Prescription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PrescriptionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prescription, error) {
	var models []*model.Prescription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
