package knowledge

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/repository/contract"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/embedding"
)

const maxResults = 3

// Matcher resolves a free-text query to knowledge-base records through a
// layered strategy: curated aliases first, exact condition names second,
// vector search third, and a keyword scan as the degraded last resort.
// A nil result means "no relevant knowledge", which is not an error.
type Matcher struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger

	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

func NewMatcher(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) *Matcher {
	return &Matcher{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

// wordBoundaryMatch reports whether phrase occurs in query on word
// boundaries, so "pain" never matches inside "painting".
func (m *Matcher) wordBoundaryMatch(query, phrase string) bool {
	m.mu.Lock()
	if m.patterns == nil {
		m.patterns = make(map[string]*regexp.Regexp)
	}
	pattern, ok := m.patterns[phrase]
	if !ok {
		pattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
		m.patterns[phrase] = pattern
	}
	m.mu.Unlock()
	return pattern.MatchString(query)
}

// IsRelevant is the cheap gate in front of any lookup: the query must carry
// advisory intent or name a known condition.
func (m *Matcher) IsRelevant(query string) bool {
	for _, word := range advisoryWords {
		if m.wordBoundaryMatch(query, word) {
			return true
		}
	}
	for keyword := range conditionKeywords {
		if m.wordBoundaryMatch(query, keyword) {
			return true
		}
	}
	return false
}

// DetectCondition scans the condition keyword list and returns the canonical
// condition name, or empty when nothing matches or the match is a deferred
// sentinel. When keywords of several conditions co-occur ("stroke" next to
// "cannot breathe") the most urgent condition wins; within equal urgency the
// longer keyword wins so "heart attack" beats "attack".
func (m *Matcher) DetectCondition(query string) string {
	type candidate struct {
		keyword   string
		condition string
	}

	var matches []candidate
	for keyword, condition := range conditionKeywords {
		if condition == AliasDefer {
			continue
		}
		if m.wordBoundaryMatch(query, keyword) {
			matches = append(matches, candidate{keyword: keyword, condition: condition})
		}
	}
	if len(matches) == 0 {
		return ""
	}

	sort.Slice(matches, func(i, j int) bool {
		ui := conditionUrgency[matches[i].condition]
		uj := conditionUrgency[matches[j].condition]
		if ui != uj {
			return ui > uj
		}
		if len(matches[i].keyword) != len(matches[j].keyword) {
			return len(matches[i].keyword) > len(matches[j].keyword)
		}
		return matches[i].keyword < matches[j].keyword
	})
	return matches[0].condition
}

// resolveAlias checks the symptom alias table. The second return reports
// whether a sentinel fired, which suppresses all further matching.
func (m *Matcher) resolveAlias(query string) (string, bool) {
	phrases := make([]string, 0, len(symptomAliases))
	for p := range symptomAliases {
		phrases = append(phrases, p)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return phrases[i] < phrases[j]
	})

	for _, phrase := range phrases {
		if m.wordBoundaryMatch(query, phrase) {
			condition := symptomAliases[phrase]
			if condition == AliasDefer {
				return "", true
			}
			return condition, false
		}
	}
	return "", false
}

// Match returns up to 3 relevant knowledge records, or nil when the query is
// unrelated, a sentinel fired, or nothing matched anywhere.
func (m *Matcher) Match(ctx context.Context, query string) ([]*entity.KnowledgeRecord, error) {
	if !m.IsRelevant(query) {
		return nil, nil
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	repo := uow.KnowledgeRepository()

	// Layer 1: curated symptom aliases. Cheap and precise, so it wins.
	if condition, deferred := m.resolveAlias(query); deferred {
		m.log.Debug("KnowledgeMatcher", "Sentinel alias fired, deferring to responder", map[string]interface{}{
			"query": query,
		})
		return nil, nil
	} else if condition != "" {
		record, err := repo.FindByCondition(ctx, condition)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return []*entity.KnowledgeRecord{record}, nil
		}
	}

	// Layer 2: condition keyword detection ("headache" resolves to Migraine
	// even though the record name never appears in the query).
	if condition := m.DetectCondition(query); condition != "" {
		record, err := repo.FindByCondition(ctx, condition)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return []*entity.KnowledgeRecord{record}, nil
		}
	}

	// Layer 3: direct condition-name scan.
	names, err := repo.AllConditionNames(ctx)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, name := range names {
		if m.wordBoundaryMatch(query, name) {
			matched = append(matched, name)
			if len(matched) == maxResults {
				break
			}
		}
	}
	if len(matched) > 0 {
		return repo.FindByConditions(ctx, matched, maxResults)
	}

	// Layer 4: semantic search, with the keyword scan as degraded fallback.
	records, err := m.semanticSearch(ctx, repo, query)
	if err != nil {
		m.log.Warn("KnowledgeMatcher", "Semantic search degraded to keyword fallback", map[string]interface{}{
			"error": err.Error(),
		})
		records = m.keywordFallback(ctx, repo, query)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records, nil
}

func (m *Matcher) semanticSearch(ctx context.Context, repo contract.KnowledgeRepository, query string) ([]*entity.KnowledgeRecord, error) {
	embeddingRes, err := m.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	scored, err := repo.SearchSimilarWithScore(ctx, embeddingRes.Embedding.Values, maxResults)
	if err != nil {
		return nil, err
	}

	records := make([]*entity.KnowledgeRecord, 0, len(scored))
	for _, s := range scored {
		records = append(records, s.Record)
	}
	return records, nil
}

// keywordFallback must never raise: errors degrade to an empty result.
func (m *Matcher) keywordFallback(ctx context.Context, repo contract.KnowledgeRepository, query string) []*entity.KnowledgeRecord {
	records, err := repo.KeywordSearch(ctx, strings.TrimSpace(query), maxResults)
	if err != nil {
		m.log.Warn("KnowledgeMatcher", "Keyword fallback failed, returning no knowledge", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return records
}
