package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-medassist-be/internal/config"
	"ai-medassist-be/internal/dto"
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/repository/contract"
	"ai-medassist-be/internal/repository/specification"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/chat"
	"ai-medassist-be/pkg/embedding"
	"ai-medassist-be/pkg/knowledge"
	"ai-medassist-be/pkg/llm"
	"ai-medassist-be/pkg/triage"
)

// In-memory repositories backing a full chat turn.

type memKnowledgeRepo struct {
	records map[string]*entity.KnowledgeRecord
}

func (m *memKnowledgeRepo) FindByCondition(_ context.Context, condition string) (*entity.KnowledgeRecord, error) {
	return m.records[condition], nil
}

func (m *memKnowledgeRepo) FindByConditions(_ context.Context, conditions []string, limit int) ([]*entity.KnowledgeRecord, error) {
	var out []*entity.KnowledgeRecord
	for _, c := range conditions {
		if r, ok := m.records[c]; ok {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memKnowledgeRepo) AllConditionNames(context.Context) ([]string, error) {
	names := make([]string, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}
	return names, nil
}

func (m *memKnowledgeRepo) SearchSimilarWithScore(context.Context, []float32, int) ([]*contract.ScoredKnowledgeRecord, error) {
	return nil, nil
}

func (m *memKnowledgeRepo) KeywordSearch(context.Context, string, int) ([]*entity.KnowledgeRecord, error) {
	return nil, nil
}

type memPatientRepo struct {
	maxSeverity map[uuid.UUID]float64
	history     map[uuid.UUID][]*entity.SeverityAssessment
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{
		maxSeverity: make(map[uuid.UUID]float64),
		history:     make(map[uuid.UUID][]*entity.SeverityAssessment),
	}
}

func (m *memPatientRepo) MergeMaxSeverity(_ context.Context, userId uuid.UUID, score float64) error {
	if score > m.maxSeverity[userId] {
		m.maxSeverity[userId] = score
	}
	return nil
}

func (m *memPatientRepo) AppendHistory(_ context.Context, userId uuid.UUID, a *entity.SeverityAssessment) error {
	for _, existing := range m.history[userId] {
		if existing.Id == a.Id {
			return nil
		}
	}
	m.history[userId] = append(m.history[userId], a)
	return nil
}

func (m *memPatientRepo) FindOne(_ context.Context, userId uuid.UUID) (*entity.PatientRecord, error) {
	score, ok := m.maxSeverity[userId]
	if !ok {
		return nil, nil
	}
	return &entity.PatientRecord{UserId: userId, MaxSeverity: score}, nil
}

func (m *memPatientRepo) FindHistory(_ context.Context, userId uuid.UUID) ([]*entity.SeverityAssessment, error) {
	return m.history[userId], nil
}

type memChatTurnRepo struct {
	turns []*entity.ChatTurn
}

func (m *memChatTurnRepo) Create(_ context.Context, turn *entity.ChatTurn) error {
	m.turns = append(m.turns, turn)
	return nil
}

func (m *memChatTurnRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ChatTurn, error) {
	return m.turns, nil
}

type memUow struct {
	knowledge *memKnowledgeRepo
	patient   *memPatientRepo
	chatTurns *memChatTurnRepo
}

func (m *memUow) Begin(context.Context) error { return nil }
func (m *memUow) Commit() error               { return nil }
func (m *memUow) Rollback() error             { return nil }
func (m *memUow) KnowledgeRepository() contract.KnowledgeRepository {
	return m.knowledge
}
func (m *memUow) PrescriptionRepository() contract.PrescriptionRepository { return nil }
func (m *memUow) PatientRecordRepository() contract.PatientRecordRepository {
	return m.patient
}
func (m *memUow) ChatTurnRepository() contract.ChatTurnRepository {
	return m.chatTurns
}

type memFactory struct {
	uow *memUow
}

func (m *memFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return m.uow
}

type nopEmbedder struct{}

func (nopEmbedder) Generate(string, string) (*embedding.EmbeddingResponse, error) {
	return nil, errors.New("embedding unavailable")
}

type fixedProvider struct {
	reply string
	err   error
}

func (f *fixedProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fixedProvider) Generate(context.Context, string, ...llm.Option) (string, error) {
	return f.reply, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestChatService(uow *memUow, provider llm.LLMProvider) IChatService {
	factory := &memFactory{uow: uow}
	matcher := knowledge.NewMatcher(factory, nopEmbedder{}, nopLogger{})
	triageEngine := triage.NewTriage(factory, config.TriageConfig{EmergencyThreshold: 7.0, UnknownScore: 5.0}, nopLogger{})
	orchestrator := chat.NewOrchestrator(provider, []string{"model-a"}, nopLogger{})
	return NewChatService(factory, matcher, triageEngine, orchestrator, nopLogger{})
}

func newMemUow(records map[string]*entity.KnowledgeRecord) *memUow {
	return &memUow{
		knowledge: &memKnowledgeRepo{records: records},
		patient:   newMemPatientRepo(),
		chatTurns: &memChatTurnRepo{},
	}
}

func TestSendEmergencyTurn(t *testing.T) {
	uow := newMemUow(map[string]*entity.KnowledgeRecord{
		"Heart Attack": {
			Condition:     "Heart Attack",
			Symptoms:      []string{"chest pain", "sweating"},
			Remedy:        "Call emergency services immediately.",
			SeverityScore: 9.5,
		},
	})
	svc := newTestChatService(uow, &fixedProvider{reply: "please get to a hospital"})
	userId := uuid.New()

	res, err := svc.Send(context.Background(), userId, &dto.SendChatRequest{
		Message: "I have severe chest pain, what medicine should I take?",
	})
	require.NoError(t, err)

	require.NotNil(t, res.Severity)
	assert.Equal(t, "Critical", res.Severity.Level)
	assert.True(t, res.Severity.IsEmergency)
	assert.True(t, strings.HasPrefix(res.Reply, "This may be a medical emergency"))

	// Both history side effects landed.
	assert.Equal(t, 9.5, uow.patient.maxSeverity[userId])
	require.Len(t, uow.patient.history[userId], 1)
	assert.True(t, uow.patient.history[userId][0].IsEmergency)

	// The turn itself was persisted with its context.
	require.Len(t, uow.chatTurns.turns, 1)
	assert.Contains(t, uow.chatTurns.turns[0].Context, "Heart Attack")
}

func TestSendCoOccurringKeywordsEscalate(t *testing.T) {
	uow := newMemUow(map[string]*entity.KnowledgeRecord{
		"Heart Attack": {
			Condition:     "Heart Attack",
			Remedy:        "Call emergency services immediately.",
			SeverityScore: 9.5,
		},
		"Asthma": {
			Condition:     "Asthma",
			Remedy:        "Prescribed inhalers and trigger avoidance.",
			SeverityScore: 6.5,
		},
	})
	svc := newTestChatService(uow, &fixedProvider{reply: "call an ambulance now"})
	userId := uuid.New()

	// A mild keyword next to an emergency one must not mask the emergency.
	res, err := svc.Send(context.Background(), userId, &dto.SendChatRequest{
		Message: "suspected stroke, chest pain and cannot breathe",
	})
	require.NoError(t, err)

	require.NotNil(t, res.Severity)
	require.NotNil(t, res.Severity.Condition)
	assert.Equal(t, "Heart Attack", *res.Severity.Condition)
	assert.Equal(t, "Critical", res.Severity.Level)
	assert.True(t, res.Severity.IsEmergency)
	assert.True(t, strings.HasPrefix(res.Reply, "This may be a medical emergency"))
	assert.Equal(t, 9.5, uow.patient.maxSeverity[userId])
}

func TestSendSeverityRecordedEvenWhenBackendFails(t *testing.T) {
	uow := newMemUow(map[string]*entity.KnowledgeRecord{
		"Stroke": {
			Condition:     "Stroke",
			Remedy:        "Call emergency services immediately.",
			SeverityScore: 9.5,
		},
	})
	svc := newTestChatService(uow, &fixedProvider{err: errors.New("backend down")})
	userId := uuid.New()

	_, err := svc.Send(context.Background(), userId, &dto.SendChatRequest{
		Message: "my father is showing stroke symptoms, help",
	})
	require.Error(t, err)

	// The recorded emergency must survive the failed reply.
	assert.Equal(t, 9.5, uow.patient.maxSeverity[userId])
	assert.Len(t, uow.patient.history[userId], 1)
	assert.Empty(t, uow.chatTurns.turns)
}

func TestSendOrdinaryChatSkipsSeverity(t *testing.T) {
	uow := newMemUow(nil)
	svc := newTestChatService(uow, &fixedProvider{reply: "hello!"})
	userId := uuid.New()

	res, err := svc.Send(context.Background(), userId, &dto.SendChatRequest{
		Message: "good morning",
	})
	require.NoError(t, err)

	assert.Nil(t, res.Severity)
	assert.Equal(t, "hello!", res.Reply)
	assert.Empty(t, uow.patient.history[userId])
	assert.Zero(t, uow.patient.maxSeverity[userId])
}

func TestSendMaxSeverityNeverDecreases(t *testing.T) {
	uow := newMemUow(map[string]*entity.KnowledgeRecord{
		"Stroke":   {Condition: "Stroke", SeverityScore: 9.5},
		"Migraine": {Condition: "Migraine", SeverityScore: 4.0},
	})
	svc := newTestChatService(uow, &fixedProvider{reply: "ok"})
	userId := uuid.New()

	_, err := svc.Send(context.Background(), userId, &dto.SendChatRequest{Message: "stroke symptoms, suggest help"})
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), userId, &dto.SendChatRequest{Message: "now just a headache, any remedy?"})
	require.NoError(t, err)

	assert.Equal(t, 9.5, uow.patient.maxSeverity[userId])
	assert.Len(t, uow.patient.history[userId], 2)
}

func TestSeverityStatus(t *testing.T) {
	uow := newMemUow(map[string]*entity.KnowledgeRecord{
		"Dengue": {Condition: "Dengue", SeverityScore: 7.5},
	})
	svc := newTestChatService(uow, &fixedProvider{reply: "hydrate and monitor platelets"})
	userId := uuid.New()

	_, err := svc.Send(context.Background(), userId, &dto.SendChatRequest{Message: "treatment for dengue?"})
	require.NoError(t, err)

	status, err := svc.SeverityStatus(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 7.5, status.MaxSeverity)
	require.Len(t, status.History, 1)
	assert.Equal(t, "High", status.History[0].Level)
	assert.True(t, status.History[0].IsEmergency)
}
