package contract

import (
	"context"

	"ai-medassist-be/internal/entity"
)

// ScoredKnowledgeRecord pairs a record with its cosine similarity to a query.
type ScoredKnowledgeRecord struct {
	Record     *entity.KnowledgeRecord
	Similarity float64
}

// KnowledgeRepository provides read-only access to the curated knowledge base.
type KnowledgeRepository interface {
	FindByCondition(ctx context.Context, condition string) (*entity.KnowledgeRecord, error)
	FindByConditions(ctx context.Context, conditions []string, limit int) ([]*entity.KnowledgeRecord, error)
	AllConditionNames(ctx context.Context) ([]string, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredKnowledgeRecord, error)
	KeywordSearch(ctx context.Context, query string, limit int) ([]*entity.KnowledgeRecord, error)
}
