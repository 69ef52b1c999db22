package mapper

import (
	"encoding/json"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/model"

	"gorm.io/datatypes"
)

type PrescriptionMapper struct{}

func NewPrescriptionMapper() *PrescriptionMapper {
	return &PrescriptionMapper{}
}

func (m *PrescriptionMapper) ToEntity(p *model.Prescription) *entity.Prescription {
	if p == nil {
		return nil
	}

	var medications []entity.MedicationEntity
	if len(p.Medications) > 0 {
		_ = json.Unmarshal(p.Medications, &medications)
	}

	return &entity.Prescription{
		Id:          p.Id,
		UserId:      p.UserId,
		RawText:     p.RawText,
		Source:      entity.ExtractionSource(p.Source),
		Confidence:  p.Confidence,
		Medications: medications,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *PrescriptionMapper) ToModel(p *entity.Prescription) *model.Prescription {
	if p == nil {
		return nil
	}

	medications, _ := json.Marshal(p.Medications)

	return &model.Prescription{
		Id:          p.Id,
		UserId:      p.UserId,
		RawText:     p.RawText,
		Source:      string(p.Source),
		Confidence:  p.Confidence,
		Medications: datatypes.JSON(medications),
		CreatedAt:   p.CreatedAt,
	}
}

func (m *PrescriptionMapper) ToEntities(prescriptions []*model.Prescription) []*entity.Prescription {
	entities := make([]*entity.Prescription, len(prescriptions))
	for i, p := range prescriptions {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
