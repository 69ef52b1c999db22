package mapper

import (
	"encoding/json"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(r *model.KnowledgeRecord) *entity.KnowledgeRecord {
	if r == nil {
		return nil
	}

	var symptoms []string
	if len(r.Symptoms) > 0 {
		_ = json.Unmarshal(r.Symptoms, &symptoms)
	}
	var precautions []string
	if len(r.Precautions) > 0 {
		_ = json.Unmarshal(r.Precautions, &precautions)
	}

	return &entity.KnowledgeRecord{
		Id:            r.Id,
		Condition:     r.Condition,
		Symptoms:      symptoms,
		Remedy:        r.Remedy,
		Precautions:   precautions,
		SeverityScore: r.SeverityScore,
		Embedding:     r.Embedding.Slice(),
	}
}

func (m *KnowledgeMapper) ToModel(r *entity.KnowledgeRecord) *model.KnowledgeRecord {
	if r == nil {
		return nil
	}

	symptoms, _ := json.Marshal(r.Symptoms)
	precautions, _ := json.Marshal(r.Precautions)

	return &model.KnowledgeRecord{
		Id:            r.Id,
		Condition:     r.Condition,
		Symptoms:      datatypes.JSON(symptoms),
		Remedy:        r.Remedy,
		Precautions:   datatypes.JSON(precautions),
		SeverityScore: r.SeverityScore,
		Embedding:     pgvector.NewVector(r.Embedding),
	}
}

func (m *KnowledgeMapper) ToEntities(records []*model.KnowledgeRecord) []*entity.KnowledgeRecord {
	entities := make([]*entity.KnowledgeRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
