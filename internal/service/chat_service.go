package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/internal/dto"
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/logger"
	"ai-medassist-be/internal/repository/specification"
	"ai-medassist-be/internal/repository/unitofwork"
	"ai-medassist-be/pkg/chat"
	"ai-medassist-be/pkg/knowledge"
	"ai-medassist-be/pkg/llm"
	"ai-medassist-be/pkg/triage"
)

type IChatService interface {
	Send(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	History(ctx context.Context, userId uuid.UUID) ([]*dto.ChatHistoryItem, error)
	SeverityStatus(ctx context.Context, userId uuid.UUID) (*dto.SeverityStatusResponse, error)
}

type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	matcher      *knowledge.Matcher
	triage       *triage.Triage
	orchestrator *chat.Orchestrator
	log          logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	matcher *knowledge.Matcher,
	triageEngine *triage.Triage,
	orchestrator *chat.Orchestrator,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:   uowFactory,
		matcher:      matcher,
		triage:       triageEngine,
		orchestrator: orchestrator,
		log:          log,
	}
}

// renderKnowledgeContext flattens matched records into the text block the
// model receives.
func renderKnowledgeContext(records []*entity.KnowledgeRecord) string {
	if len(records) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, r := range records {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Condition: %s\n", r.Condition)
		if len(r.Symptoms) > 0 {
			fmt.Fprintf(&sb, "Symptoms: %s\n", strings.Join(r.Symptoms, ", "))
		}
		fmt.Fprintf(&sb, "Remedy: %s", r.Remedy)
		if len(r.Precautions) > 0 {
			fmt.Fprintf(&sb, "\nPrecautions: %s", strings.Join(r.Precautions, ", "))
		}
	}
	return sb.String()
}

func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) []llm.Message {
	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.ChatHistoryWindow / 2, Offset: 0},
	)
	if err != nil {
		s.log.Warn("ChatService", "Failed to load chat history, continuing without memory", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil
	}

	// Reverse into chronological order and expand each turn into its
	// user/model message pair.
	messages := make([]llm.Message, 0, len(turns)*2)
	for i := len(turns) - 1; i >= 0; i-- {
		messages = append(messages,
			llm.Message{Role: constant.ChatMessageRoleUser, Content: turns[i].Query},
			llm.Message{Role: constant.ChatMessageRoleModel, Content: turns[i].Reply},
		)
	}
	return messages
}

// recordSeverity persists the two history side effects of a triaged turn.
// They run before the model call so an unavailable chat backend never loses a
// recorded emergency.
func (s *chatService) recordSeverity(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, a *entity.SeverityAssessment) error {
	repo := uow.PatientRecordRepository()
	if err := repo.MergeMaxSeverity(ctx, userId, a.Score); err != nil {
		return err
	}
	return repo.AppendHistory(ctx, userId, a)
}

func (s *chatService) Send(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := s.matcher.Match(ctx, req.Message)
	if err != nil {
		s.log.Warn("ChatService", "Knowledge lookup failed, answering without context", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		records = nil
	}

	condition := s.matcher.DetectCondition(req.Message)
	if condition == "" && len(records) == 1 {
		condition = records[0].Condition
	}

	assessment, err := s.triage.Assess(ctx, condition)
	if err != nil {
		return nil, err
	}

	if assessment.Condition != nil {
		if err := s.recordSeverity(ctx, uow, userId, assessment); err != nil {
			return nil, err
		}
	}

	knowledgeContext := renderKnowledgeContext(records)
	result, err := s.orchestrator.Respond(ctx, chat.Input{
		Query:            req.Message,
		KnowledgeContext: knowledgeContext,
		Assessment:       assessment,
		History:          s.loadHistory(ctx, uow, userId),
	})
	if err != nil {
		return nil, err
	}

	turn := entity.ChatTurn{
		Id:        uuid.New(),
		UserId:    userId,
		Query:     req.Message,
		Context:   knowledgeContext,
		Reply:     result.Reply,
		Severity:  assessment,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatTurnRepository().Create(ctx, &turn); err != nil {
		return nil, err
	}

	res := &dto.SendChatResponse{
		Id:    turn.Id,
		Reply: result.Reply,
		Model: result.Model,
	}
	if assessment.Condition != nil {
		res.Severity = &dto.SeverityInfo{
			Score:       assessment.Score,
			Level:       string(assessment.Level),
			IsEmergency: assessment.IsEmergency,
			Condition:   assessment.Condition,
		}
	}
	return res, nil
}

func (s *chatService) History(ctx context.Context, userId uuid.UUID) ([]*dto.ChatHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ChatTurnRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ChatHistoryItem, len(turns))
	for i, t := range turns {
		items[i] = &dto.ChatHistoryItem{
			Id:        t.Id,
			Query:     t.Query,
			Reply:     t.Reply,
			CreatedAt: t.CreatedAt,
		}
	}
	return items, nil
}

func (s *chatService) SeverityStatus(ctx context.Context, userId uuid.UUID) (*dto.SeverityStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PatientRecordRepository()

	record, err := repo.FindOne(ctx, userId)
	if err != nil {
		return nil, err
	}
	history, err := repo.FindHistory(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := &dto.SeverityStatusResponse{
		History: make([]dto.SeverityHistoryItem, len(history)),
	}
	if record != nil {
		res.MaxSeverity = record.MaxSeverity
		updatedAt := record.UpdatedAt
		res.UpdatedAt = &updatedAt
	}
	for i, a := range history {
		res.History[i] = dto.SeverityHistoryItem{
			Score:       a.Score,
			Level:       string(a.Level),
			IsEmergency: a.IsEmergency,
			Condition:   a.Condition,
			CreatedAt:   a.CreatedAt,
		}
	}
	return res, nil
}
