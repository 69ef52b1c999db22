package entity

import "github.com/google/uuid"

// KnowledgeRecord is one row of the curated medical knowledge base. Records
// are read-only from the pipeline's point of view; the knowledge base is
// seeded and maintained externally.
type KnowledgeRecord struct {
	Id            uuid.UUID
	Condition     string
	Symptoms      []string
	Remedy        string
	Precautions   []string
	SeverityScore float64
	Embedding     []float32 // 384 dims
}
