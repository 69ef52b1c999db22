package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/serverutils"
	"ai-medassist-be/pkg/llm"
)

type scriptedProvider struct {
	responses map[string]string
	errs      map[string]error
	tried     []string
	lastChat  []llm.Message
}

func (s *scriptedProvider) Chat(_ context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{}
	for _, o := range options {
		o(opts)
	}
	s.tried = append(s.tried, opts.Model)
	s.lastChat = history
	if err, ok := s.errs[opts.Model]; ok {
		return "", err
	}
	return s.responses[opts.Model], nil
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func notFound(model string) error {
	return &llm.ModelNotFoundError{Model: model, Cause: errors.New("404")}
}

func TestRespondFirstModelWins(t *testing.T) {
	provider := &scriptedProvider{responses: map[string]string{"model-a": "rest and hydrate"}}
	orch := NewOrchestrator(provider, []string{"model-a", "model-b"}, nopLogger{})

	res, err := orch.Respond(context.Background(), Input{Query: "what helps with a mild cold?"})
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if res.Reply != "rest and hydrate" || res.Model != "model-a" {
		t.Errorf("got %+v, want reply from model-a", res)
	}
	if len(provider.tried) != 1 {
		t.Errorf("tried %v, want only the first candidate", provider.tried)
	}
}

func TestRespondSkipsDeprecatedModel(t *testing.T) {
	provider := &scriptedProvider{
		errs:      map[string]error{"model-x": notFound("model-x")},
		responses: map[string]string{"model-y": "take it easy today"},
	}
	orch := NewOrchestrator(provider, []string{"model-x", "model-y"}, nopLogger{})

	res, err := orch.Respond(context.Background(), Input{Query: "any advice for a headache?"})
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if res.Model != "model-y" {
		t.Errorf("served by %q, want model-y after model-x rejection", res.Model)
	}
	if len(provider.tried) != 2 {
		t.Errorf("tried %v, want both candidates in order", provider.tried)
	}
}

func TestRespondPropagatesOtherErrors(t *testing.T) {
	provider := &scriptedProvider{
		errs:      map[string]error{"model-x": errors.New("rate limited")},
		responses: map[string]string{"model-y": "never reached"},
	}
	orch := NewOrchestrator(provider, []string{"model-x", "model-y"}, nopLogger{})

	_, err := orch.Respond(context.Background(), Input{Query: "hello"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) || appErr.Kind != serverutils.KindUnexpectedBackendError {
		t.Errorf("got %v, want UNEXPECTED_BACKEND_ERROR", err)
	}
	if len(provider.tried) != 1 {
		t.Errorf("tried %v, non-deprecation failures must not fall through", provider.tried)
	}
}

func TestRespondAllCandidatesExhausted(t *testing.T) {
	provider := &scriptedProvider{
		errs: map[string]error{
			"model-x": notFound("model-x"),
			"model-y": notFound("model-y"),
		},
	}
	orch := NewOrchestrator(provider, []string{"model-x", "model-y"}, nopLogger{})

	_, err := orch.Respond(context.Background(), Input{Query: "hello"})
	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) || appErr.Kind != serverutils.KindNoBackendAvailable {
		t.Errorf("got %v, want NO_BACKEND_AVAILABLE", err)
	}
}

func TestRespondEmptyQuery(t *testing.T) {
	orch := NewOrchestrator(&scriptedProvider{}, []string{"model-a"}, nopLogger{})

	_, err := orch.Respond(context.Background(), Input{Query: "   "})
	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) || appErr.Kind != serverutils.KindInvalidInput {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestRespondEmergencyPreamble(t *testing.T) {
	provider := &scriptedProvider{responses: map[string]string{"model-a": "see a cardiologist"}}
	orch := NewOrchestrator(provider, []string{"model-a"}, nopLogger{})

	condition := "Heart Attack"
	res, err := orch.Respond(context.Background(), Input{
		Query: "I have crushing chest pain",
		Assessment: &entity.SeverityAssessment{
			Score:       9.0,
			Level:       entity.SeverityCritical,
			IsEmergency: true,
			Condition:   &condition,
		},
	})
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if !strings.HasPrefix(res.Reply, "This may be a medical emergency") {
		t.Errorf("emergency reply must open with the fixed instruction, got %q", res.Reply)
	}
	if !strings.Contains(res.Reply, "see a cardiologist") {
		t.Errorf("model output must still follow the preamble, got %q", res.Reply)
	}
}

func TestRespondPromptCarriesContextBlocks(t *testing.T) {
	provider := &scriptedProvider{responses: map[string]string{"model-a": "ok"}}
	orch := NewOrchestrator(provider, []string{"model-a"}, nopLogger{})

	condition := "Dengue"
	_, err := orch.Respond(context.Background(), Input{
		Query:            "what should I do about dengue?",
		KnowledgeContext: "Condition: Dengue. Remedy: hydration and rest.",
		Assessment: &entity.SeverityAssessment{
			Score:     7.0,
			Level:     entity.SeverityHigh,
			Condition: &condition,
		},
	})
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}

	last := provider.lastChat[len(provider.lastChat)-1]
	if !strings.Contains(last.Content, "KNOWLEDGE CONTEXT") {
		t.Errorf("final message missing knowledge block: %q", last.Content)
	}
	if !strings.Contains(last.Content, "Condition: Dengue") {
		t.Errorf("final message missing severity block: %q", last.Content)
	}
	if !strings.Contains(last.Content, "what should I do about dengue?") {
		t.Errorf("final message missing the question: %q", last.Content)
	}
}
