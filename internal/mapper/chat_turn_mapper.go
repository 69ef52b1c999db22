package mapper

import (
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/model"
)

type ChatTurnMapper struct{}

func NewChatTurnMapper() *ChatTurnMapper {
	return &ChatTurnMapper{}
}

func (m *ChatTurnMapper) ToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}
	mdl := &model.ChatTurn{
		Id:        t.Id,
		UserId:    t.UserId,
		Query:     t.Query,
		Context:   t.Context,
		Reply:     t.Reply,
		CreatedAt: t.CreatedAt,
	}
	if t.Severity != nil {
		severityId := t.Severity.Id
		mdl.SeverityId = &severityId
	}
	return mdl
}

func (m *ChatTurnMapper) ToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}
	return &entity.ChatTurn{
		Id:        t.Id,
		UserId:    t.UserId,
		Query:     t.Query,
		Context:   t.Context,
		Reply:     t.Reply,
		CreatedAt: t.CreatedAt,
	}
}

func (m *ChatTurnMapper) ToEntities(turns []*model.ChatTurn) []*entity.ChatTurn {
	entities := make([]*entity.ChatTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
