package triage

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"ai-medassist-be/internal/config"
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/repository/unitofwork"
)

// Severity band breakpoints on the 0-10 scale. The upper bound of each band
// is exclusive except for Critical, which absorbs 10 itself.
const (
	moderateFloor = 3.0
	highFloor     = 6.0
	criticalFloor = 8.0
)

// Triage converts a detected condition into a severity assessment using the
// knowledge base's per-condition severity scores.
type Triage struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        config.TriageConfig
	log        logger.ILogger
}

func NewTriage(uowFactory unitofwork.RepositoryFactory, cfg config.TriageConfig, log logger.ILogger) *Triage {
	return &Triage{uowFactory: uowFactory, cfg: cfg, log: log}
}

// LevelFor maps a score to its severity band.
func LevelFor(score float64) entity.SeverityLevel {
	switch {
	case score >= criticalFloor:
		return entity.SeverityCritical
	case score >= highFloor:
		return entity.SeverityHigh
	case score >= moderateFloor:
		return entity.SeverityModerate
	default:
		return entity.SeverityLow
	}
}

// roundScore keeps scores at one decimal place on every boundary we persist
// or compare, so 6.95 triages the same everywhere it is seen.
func roundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// Assess produces the severity assessment for a condition. An empty condition
// means the turn raised no medical concern and yields the zero assessment. A
// condition the knowledge base does not know gets the configured unknown
// score rather than a silent zero.
func (t *Triage) Assess(ctx context.Context, condition string) (*entity.SeverityAssessment, error) {
	assessment := &entity.SeverityAssessment{
		Id:        uuid.New(),
		Level:     entity.SeverityLow,
		CreatedAt: time.Now(),
	}
	if condition == "" {
		return assessment, nil
	}
	assessment.Condition = &condition

	uow := t.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.KnowledgeRepository().FindByCondition(ctx, condition)
	if err != nil {
		return nil, err
	}

	score := t.cfg.UnknownScore
	if record != nil {
		score = record.SeverityScore
	} else {
		t.log.Warn("SeverityTriage", "Condition missing from knowledge base, using unknown score", map[string]interface{}{
			"condition": condition,
			"score":     score,
		})
	}

	assessment.Score = roundScore(score)
	assessment.Level = LevelFor(assessment.Score)
	assessment.IsEmergency = assessment.Score >= t.cfg.EmergencyThreshold
	return assessment, nil
}
