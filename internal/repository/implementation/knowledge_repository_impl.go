package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/mapper"
	"ai-medassist-be/internal/model"
	"ai-medassist-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const (
	conditionNamesCacheKey = "condition_names"
	recordCachePrefix      = "record:"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	table  string
	mapper *mapper.KnowledgeMapper
	cache  *gocache.Cache
}

// NewKnowledgeRepository builds a repository over the given pgvector-backed
// table. An empty table name falls back to the default knowledge index.
func NewKnowledgeRepository(db *gorm.DB, table string) contract.KnowledgeRepository {
	if table == "" {
		table = model.KnowledgeRecord{}.TableName()
	}
	return &KnowledgeRepositoryImpl{
		db:     db,
		table:  table,
		mapper: mapper.NewKnowledgeMapper(),
		// The knowledge base is reference data maintained out-of-band, so a
		// short TTL is enough to pick up reseeds without restarting.
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *KnowledgeRepositoryImpl) FindByCondition(ctx context.Context, condition string) (*entity.KnowledgeRecord, error) {
	if cached, ok := r.cache.Get(recordCachePrefix + condition); ok {
		return cached.(*entity.KnowledgeRecord), nil
	}

	var m model.KnowledgeRecord
	err := r.db.WithContext(ctx).Table(r.table).Where("condition = ?", condition).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record := r.mapper.ToEntity(&m)
	r.cache.Set(recordCachePrefix+condition, record, gocache.DefaultExpiration)
	return record, nil
}

func (r *KnowledgeRepositoryImpl) FindByConditions(ctx context.Context, conditions []string, limit int) ([]*entity.KnowledgeRecord, error) {
	if len(conditions) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}

	var models []*model.KnowledgeRecord
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("condition IN ?", conditions).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeRepositoryImpl) AllConditionNames(ctx context.Context) ([]string, error) {
	if cached, ok := r.cache.Get(conditionNamesCacheKey); ok {
		return cached.([]string), nil
	}

	var names []string
	err := r.db.WithContext(ctx).
		Table(r.table).
		Order("condition ASC").
		Pluck("condition", &names).Error
	if err != nil {
		return nil, err
	}

	r.cache.Set(conditionNamesCacheKey, names, gocache.DefaultExpiration)
	return names, nil
}

func (r *KnowledgeRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredKnowledgeRecord, error) {
	if limit <= 0 {
		limit = 3
	}

	// Cosine distance in pgvector is 1 - cosine_similarity.
	type result struct {
		model.KnowledgeRecord
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table(r.table).
		Select(fmt.Sprintf("%s.*, 1 - (embedding <=> ?) as similarity", r.table), queryVector).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeRecord, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredKnowledgeRecord{
			Record:     r.mapper.ToEntity(&res.KnowledgeRecord),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *KnowledgeRepositoryImpl) KeywordSearch(ctx context.Context, query string, limit int) ([]*entity.KnowledgeRecord, error) {
	if limit <= 0 {
		limit = 3
	}

	pattern := "%" + query + "%"
	var models []*model.KnowledgeRecord
	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("condition ILIKE ? OR remedy ILIKE ? OR symptoms::text ILIKE ?", pattern, pattern, pattern).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
