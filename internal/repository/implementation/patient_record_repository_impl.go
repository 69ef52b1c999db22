package implementation

import (
	"context"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/mapper"
	"ai-medassist-be/internal/model"
	"ai-medassist-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PatientRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TriageMapper
}

func NewPatientRecordRepository(db *gorm.DB) contract.PatientRecordRepository {
	return &PatientRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewTriageMapper(),
	}
}

func (r *PatientRecordRepositoryImpl) MergeMaxSeverity(ctx context.Context, userId uuid.UUID, score float64) error {
	// Single-statement upsert: GREATEST keeps the merge monotonic under
	// concurrent writers and idempotent under retries.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"max_severity": gorm.Expr("GREATEST(patient_records.max_severity, EXCLUDED.max_severity)"),
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).
		Create(&model.PatientRecord{
			UserId:      userId,
			MaxSeverity: score,
		}).Error
}

func (r *PatientRecordRepositoryImpl) AppendHistory(ctx context.Context, userId uuid.UUID, assessment *entity.SeverityAssessment) error {
	m := r.mapper.ToHistoryModel(userId, assessment)
	// PK is the assessment id: a retried append conflicts and does nothing.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
}

func (r *PatientRecordRepositoryImpl) FindOne(ctx context.Context, userId uuid.UUID) (*entity.PatientRecord, error) {
	var m model.PatientRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity.PatientRecord{
		UserId:      m.UserId,
		MaxSeverity: m.MaxSeverity,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (r *PatientRecordRepositoryImpl) FindHistory(ctx context.Context, userId uuid.UUID) ([]*entity.SeverityAssessment, error) {
	var models []*model.SeverityHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	assessments := make([]*entity.SeverityAssessment, len(models))
	for i, m := range models {
		assessments[i] = r.mapper.ToAssessmentEntity(m)
	}
	return assessments, nil
}
