package mapper

import (
	"voidbitz-chat-be/internal/entity"
	"voidbitz-chat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	e := &entity.ChatSession{
		Id:                s.Id,
		Title:             s.Title,
		UserId:            s.UserId,
		ModelDeploymentId: s.ModelDeploymentId,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		ModelDeployment:   NewDeploymentMapper().ToEntity(s.ModelDeployment),
	}

	if len(s.Messages) > 0 {
		e.Messages = make([]entity.ChatMessage, len(s.Messages))
		for i := range s.Messages {
			e.Messages[i] = *m.ChatMessageToEntity(&s.Messages[i])
		}
	}

	return e
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	// Associations are intentionally not mapped back; writes go through
	// the message repository so GORM never upserts nested rows.
	return &model.ChatSession{
		Id:                s.Id,
		Title:             s.Title,
		UserId:            s.UserId,
		ModelDeploymentId: s.ModelDeploymentId,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Content:    msg.Content,
		Role:       msg.Role,
		Timestamp:  msg.Timestamp,
		TokenCount: msg.TokenCount,
		UserId:     msg.UserId,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Content:    msg.Content,
		Role:       msg.Role,
		Timestamp:  msg.Timestamp,
		TokenCount: msg.TokenCount,
		UserId:     msg.UserId,
	}
}
