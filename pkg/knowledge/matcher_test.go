package knowledge

import (
	"context"
	"errors"
	"testing"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/repository/contract"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/embedding"
)

type fakeKnowledgeRepo struct {
	records       map[string]*entity.KnowledgeRecord
	searchResults []*contract.ScoredKnowledgeRecord
	searchErr     error
	keywordResult []*entity.KnowledgeRecord
	keywordErr    error
	keywordCalls  int
}

func (f *fakeKnowledgeRepo) FindByCondition(_ context.Context, condition string) (*entity.KnowledgeRecord, error) {
	return f.records[condition], nil
}

func (f *fakeKnowledgeRepo) FindByConditions(_ context.Context, conditions []string, limit int) ([]*entity.KnowledgeRecord, error) {
	var out []*entity.KnowledgeRecord
	for _, c := range conditions {
		if r, ok := f.records[c]; ok {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeKnowledgeRepo) AllConditionNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.records))
	for name := range f.records {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeKnowledgeRepo) SearchSimilarWithScore(_ context.Context, _ []float32, _ int) ([]*contract.ScoredKnowledgeRecord, error) {
	return f.searchResults, f.searchErr
}

func (f *fakeKnowledgeRepo) KeywordSearch(_ context.Context, _ string, _ int) ([]*entity.KnowledgeRecord, error) {
	f.keywordCalls++
	return f.keywordResult, f.keywordErr
}

type fakeUow struct {
	knowledge contract.KnowledgeRepository
}

func (f *fakeUow) Begin(context.Context) error { return nil }
func (f *fakeUow) Commit() error               { return nil }
func (f *fakeUow) Rollback() error             { return nil }
func (f *fakeUow) KnowledgeRepository() contract.KnowledgeRepository {
	return f.knowledge
}
func (f *fakeUow) PrescriptionRepository() contract.PrescriptionRepository   { return nil }
func (f *fakeUow) PatientRecordRepository() contract.PatientRecordRepository { return nil }
func (f *fakeUow) ChatTurnRepository() contract.ChatTurnRepository           { return nil }

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type countingEmbedder struct {
	calls  int
	err    error
	values []float32
}

func (c *countingEmbedder) Generate(string, string) (*embedding.EmbeddingResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: c.values},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestMatcher(repo *fakeKnowledgeRepo, embedder *countingEmbedder) *Matcher {
	return NewMatcher(&fakeFactory{uow: &fakeUow{knowledge: repo}}, embedder, nopLogger{})
}

func record(condition string, severity float64) *entity.KnowledgeRecord {
	return &entity.KnowledgeRecord{Condition: condition, SeverityScore: severity}
}

func TestMatchIrrelevantQuerySkipsEmbedding(t *testing.T) {
	embedder := &countingEmbedder{}
	matcher := newTestMatcher(&fakeKnowledgeRepo{}, embedder)

	queries := []string{
		"what is the weather today",
		"tell me a joke",
		"how do I renew my passport",
	}
	for _, q := range queries {
		records, err := matcher.Match(context.Background(), q)
		if err != nil {
			t.Fatalf("Match(%q) error: %v", q, err)
		}
		if records != nil {
			t.Errorf("Match(%q) = %v, want nil", q, records)
		}
	}
	if embedder.calls != 0 {
		t.Errorf("embedding backend called %d times for irrelevant queries, want 0", embedder.calls)
	}
}

func TestMatchAliasShortCircuit(t *testing.T) {
	repo := &fakeKnowledgeRepo{
		records: map[string]*entity.KnowledgeRecord{
			"Migraine": record("Migraine", 4.0),
		},
	}
	embedder := &countingEmbedder{}
	matcher := newTestMatcher(repo, embedder)

	records, err := matcher.Match(context.Background(), "any remedy for a bad headache?")
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if len(records) != 1 || records[0].Condition != "Migraine" {
		t.Fatalf("got %v, want single Migraine record", records)
	}
	if embedder.calls != 0 {
		t.Errorf("alias hit should not reach semantic search, embedder called %d times", embedder.calls)
	}
}

func TestMatchSentinelAliasReturnsNil(t *testing.T) {
	repo := &fakeKnowledgeRepo{
		records: map[string]*entity.KnowledgeRecord{
			"Cancer": record("Cancer", 9.0),
		},
	}
	embedder := &countingEmbedder{}
	matcher := newTestMatcher(repo, embedder)

	records, err := matcher.Match(context.Background(), "I found a lump, suggest a treatment")
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if records != nil {
		t.Errorf("sentinel alias should suppress all matching, got %v", records)
	}
	if embedder.calls != 0 {
		t.Errorf("sentinel alias should not reach semantic search, embedder called %d times", embedder.calls)
	}
}

func TestMatchDirectConditionScan(t *testing.T) {
	repo := &fakeKnowledgeRepo{
		records: map[string]*entity.KnowledgeRecord{
			"Dengue":  record("Dengue", 7.0),
			"Malaria": record("Malaria", 7.5),
		},
	}
	embedder := &countingEmbedder{}
	matcher := newTestMatcher(repo, embedder)

	records, err := matcher.Match(context.Background(), "suggest precautions for dengue")
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if len(records) != 1 || records[0].Condition != "Dengue" {
		t.Fatalf("got %v, want single Dengue record", records)
	}
	if embedder.calls != 0 {
		t.Errorf("direct name hit should not reach semantic search, embedder called %d times", embedder.calls)
	}
}

func TestMatchSemanticFallback(t *testing.T) {
	repo := &fakeKnowledgeRepo{
		records: map[string]*entity.KnowledgeRecord{},
		searchResults: []*contract.ScoredKnowledgeRecord{
			{Record: record("Gastritis", 3.5), Similarity: 0.82},
		},
	}
	embedder := &countingEmbedder{values: []float32{0.1, 0.2, 0.3}}
	matcher := newTestMatcher(repo, embedder)

	records, err := matcher.Match(context.Background(), "suggest a remedy for burning stomach discomfort")
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if len(records) != 1 || records[0].Condition != "Gastritis" {
		t.Fatalf("got %v, want single Gastritis record", records)
	}
	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want 1", embedder.calls)
	}
}

func TestMatchKeywordFallbackWhenEmbeddingFails(t *testing.T) {
	repo := &fakeKnowledgeRepo{
		records:       map[string]*entity.KnowledgeRecord{},
		keywordResult: []*entity.KnowledgeRecord{record("Acidity", 3.0)},
	}
	embedder := &countingEmbedder{err: errors.New("embedding backend down")}
	matcher := newTestMatcher(repo, embedder)

	records, err := matcher.Match(context.Background(), "suggest something for acid reflux at night")
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if len(records) != 1 || records[0].Condition != "Acidity" {
		t.Fatalf("got %v, want single Acidity record", records)
	}
	if repo.keywordCalls != 1 {
		t.Errorf("keyword fallback called %d times, want 1", repo.keywordCalls)
	}
}

func TestMatchKeywordFallbackNeverRaises(t *testing.T) {
	repo := &fakeKnowledgeRepo{
		records:    map[string]*entity.KnowledgeRecord{},
		keywordErr: errors.New("db connection lost"),
	}
	embedder := &countingEmbedder{err: errors.New("embedding backend down")}
	matcher := newTestMatcher(repo, embedder)

	records, err := matcher.Match(context.Background(), "suggest something for odd dizziness spells")
	if err != nil {
		t.Fatalf("Match should degrade, not fail: %v", err)
	}
	if records != nil {
		t.Errorf("got %v, want nil when every layer comes up empty", records)
	}
}

func TestDetectConditionMostUrgentWins(t *testing.T) {
	matcher := newTestMatcher(&fakeKnowledgeRepo{}, &countingEmbedder{})

	tests := []struct {
		query string
		want  string
	}{
		{"suspected stroke, chest pain and cannot breathe", "Heart Attack"},
		{"stroke and cannot breathe", "Stroke"},
		{"fever with chest pain", "Heart Attack"},
		{"headache and blood pressure is up", "Hypertension"},
		{"cough and cold with a headache", "Migraine"},
	}
	for _, tc := range tests {
		if got := matcher.DetectCondition(tc.query); got != tc.want {
			t.Errorf("DetectCondition(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestDetectCondition(t *testing.T) {
	matcher := newTestMatcher(&fakeKnowledgeRepo{}, &countingEmbedder{})

	tests := []struct {
		query string
		want  string
	}{
		{"I have chest pain and sweating", "Heart Attack"},
		{"my father had a stroke last year", "Stroke"},
		{"is this cancer?", ""},
		{"hello there", ""},
	}
	for _, tc := range tests {
		if got := matcher.DetectCondition(tc.query); got != tc.want {
			t.Errorf("DetectCondition(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}
