package chat

import (
	"context"
	"fmt"
	"strings"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/pkg/serverutils"
	"ai-medassist-be/pkg/llm"
)

// Input carries everything one turn needs: the question, optional knowledge
// context already rendered to text, the severity assessment, and the recent
// history window.
type Input struct {
	Query            string
	KnowledgeContext string
	Assessment       *entity.SeverityAssessment
	History          []llm.Message
}

// Result is the reply plus which backend produced it.
type Result struct {
	Reply string
	Model string
}

// Orchestrator drives one chat turn across an ordered list of model
// candidates. Backends deprecate and rename model ids without notice, so a
// "model not found" rejection moves to the next candidate while every other
// failure propagates immediately.
type Orchestrator struct {
	provider llm.LLMProvider
	models   []string
	log      logger.ILogger
}

func NewOrchestrator(provider llm.LLMProvider, models []string, log logger.ILogger) *Orchestrator {
	return &Orchestrator{provider: provider, models: models, log: log}
}

func (o *Orchestrator) buildHistory(input Input) []llm.Message {
	messages := []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: constant.HealthAssistantSystemPrompt},
		{Role: constant.ChatMessageRoleModel, Content: constant.HealthAssistantAckPrompt},
	}

	history := input.History
	if len(history) > constant.ChatHistoryWindow {
		history = history[len(history)-constant.ChatHistoryWindow:]
	}
	messages = append(messages, history...)

	var sb strings.Builder
	if input.KnowledgeContext != "" {
		sb.WriteString(fmt.Sprintf(constant.KnowledgeContextTemplate, input.KnowledgeContext))
		sb.WriteString("\n\n")
	}
	if a := input.Assessment; a != nil && a.Condition != nil {
		sb.WriteString(fmt.Sprintf(constant.SeverityContextTemplate, *a.Condition, a.Score, a.Level, a.IsEmergency))
		sb.WriteString("\n\n")
	}
	sb.WriteString(input.Query)

	return append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: sb.String(),
	})
}

// Respond generates the reply, trying each configured model in order. When
// the assessment flags an emergency the reply always opens with the fixed
// emergency instruction, regardless of what the model produced.
func (o *Orchestrator) Respond(ctx context.Context, input Input) (*Result, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, serverutils.InvalidInput("query must not be empty")
	}

	messages := o.buildHistory(input)

	for _, model := range o.models {
		reply, err := o.provider.Chat(ctx, messages, llm.WithModel(model))
		if err != nil {
			if llm.IsModelNotFound(err) {
				o.log.Warn("ChatOrchestrator", "Model rejected by backend, trying next candidate", map[string]interface{}{
					"model": model,
					"error": err.Error(),
				})
				continue
			}
			return nil, serverutils.UnexpectedBackendError(fmt.Sprintf("chat backend %q failed", model), err)
		}

		reply = strings.TrimSpace(reply)
		if input.Assessment != nil && input.Assessment.IsEmergency {
			reply = constant.EmergencyPreamble + "\n\n" + reply
		}
		return &Result{Reply: reply, Model: model}, nil
	}

	o.log.Error("ChatOrchestrator", "All model candidates rejected", map[string]interface{}{
		"candidates": o.models,
	})
	return nil, serverutils.NoBackendAvailable("no chat model is currently available, please try again later")
}
