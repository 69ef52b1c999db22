package mapper

import (
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/model"

	"github.com/google/uuid"
)

type TriageMapper struct{}

func NewTriageMapper() *TriageMapper {
	return &TriageMapper{}
}

func (m *TriageMapper) ToHistoryModel(userId uuid.UUID, a *entity.SeverityAssessment) *model.SeverityHistory {
	if a == nil {
		return nil
	}
	return &model.SeverityHistory{
		Id:          a.Id,
		UserId:      userId,
		Condition:   a.Condition,
		Score:       a.Score,
		Level:       string(a.Level),
		IsEmergency: a.IsEmergency,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *TriageMapper) ToAssessmentEntity(h *model.SeverityHistory) *entity.SeverityAssessment {
	if h == nil {
		return nil
	}
	return &entity.SeverityAssessment{
		Id:          h.Id,
		Score:       h.Score,
		Level:       entity.SeverityLevel(h.Level),
		IsEmergency: h.IsEmergency,
		Condition:   h.Condition,
		CreatedAt:   h.CreatedAt,
	}
}
