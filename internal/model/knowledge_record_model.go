package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeRecord struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Condition     string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	Symptoms      datatypes.JSON  `gorm:"type:jsonb"`
	Remedy        string          `gorm:"type:text"`
	Precautions   datatypes.JSON  `gorm:"type:jsonb"`
	SeverityScore float64         `gorm:"not null;default:0"`
	Embedding     pgvector.Vector `gorm:"type:vector(384)"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (KnowledgeRecord) TableName() string {
	return "knowledge_records"
}
