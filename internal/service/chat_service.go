package service

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"voidbitz-chat-be/internal/apperror"
	"voidbitz-chat-be/internal/config"
	"voidbitz-chat-be/internal/constant"
	"voidbitz-chat-be/internal/dto"
	"voidbitz-chat-be/internal/entity"
	"voidbitz-chat-be/internal/pkg/logger"
	"voidbitz-chat-be/internal/repository/specification"
	"voidbitz-chat-be/internal/repository/unitofwork"
	"voidbitz-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// IChatService defines the chat service interface
type IChatService interface {
	GetUserSessions(ctx context.Context, userId string) ([]*dto.ChatSessionResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID, userId string) (*dto.ChatSessionDetailResponse, error)
	CreateSession(ctx context.Context, userId string, request *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error)
	RenameSession(ctx context.Context, sessionId uuid.UUID, userId string, title string) (*dto.ChatSessionResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID, userId string) (bool, error)
	SendMessage(ctx context.Context, sessionId uuid.UUID, userId string, message string) (*dto.ChatMessageResponse, error)
	GetActiveDeployments(ctx context.Context) ([]*dto.ActiveDeploymentResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	llmClient  llm.ChatClient
	chatCfg    config.ChatConfig
	log        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmClient llm.ChatClient,
	chatCfg config.ChatConfig,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		llmClient:  llmClient,
		chatCfg:    chatCfg,
		log:        log,
	}
}

// GetUserSessions lists sessions newest-activity first
func (cs *chatService) GetUserSessions(ctx context.Context, userId string) ([]*dto.ChatSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.Preload{Association: "Messages"},
		specification.Preload{Association: "ModelDeployment"},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ChatSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, sessionProjection(s))
	}

	return response, nil
}

// GetSession returns the session projection plus the full ordered message list
func (cs *chatService) GetSession(ctx context.Context, sessionId uuid.UUID, userId string) (*dto.ChatSessionDetailResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
		specification.Preload{Association: "ModelDeployment"},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session %s not found", sessionId)
	}

	ordered, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "timestamp", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	session.Messages = make([]entity.ChatMessage, len(ordered))
	messages := make([]dto.ChatMessageResponse, 0, len(ordered))
	for i, m := range ordered {
		session.Messages[i] = *m
		messages = append(messages, messageProjection(m))
	}

	return &dto.ChatSessionDetailResponse{
		ChatSessionResponse: *sessionProjection(session),
		Messages:            messages,
	}, nil
}

// CreateSession persists a new session, binding it to the requested
// deployment or falling back to the registry default
func (cs *chatService) CreateSession(ctx context.Context, userId string, request *dto.CreateSessionRequest) (*dto.ChatSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	deploymentId := request.ModelDeploymentId
	if deploymentId == nil {
		defaultDeployment, err := uow.ModelDeploymentRepository().FindOne(ctx,
			specification.DefaultOnly{},
			specification.ActiveOnly{},
		)
		if err != nil {
			return nil, err
		}
		if defaultDeployment != nil {
			deploymentId = &defaultDeployment.Id
		}
	}

	title := request.Title
	if strings.TrimSpace(title) == "" {
		title = constant.DefaultSessionTitle
	}

	session := entity.ChatSession{
		Id:                uuid.New(),
		Title:             title,
		UserId:            userId,
		ModelDeploymentId: deploymentId,
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	// Load the deployment name for the projection; inactive deployments
	// are not surfaced here
	if deploymentId != nil {
		deployment, err := uow.ModelDeploymentRepository().FindOne(ctx,
			specification.ByID{ID: *deploymentId},
			specification.ActiveOnly{},
		)
		if err != nil {
			return nil, err
		}
		session.ModelDeployment = deployment
	}

	cs.log.Info("chat", "created chat session", map[string]interface{}{
		"session_id": session.Id.String(),
		"user_id":    userId,
	})

	return sessionProjection(&session), nil
}

// RenameSession updates the title, substituting a fallback for blank input
func (cs *chatService) RenameSession(ctx context.Context, sessionId uuid.UUID, userId string, title string) (*dto.ChatSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session %s not found", sessionId)
	}

	if strings.TrimSpace(title) == "" {
		title = constant.UntitledSessionTitle
	}
	session.Title = title

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	refreshed, err := cs.loadSession(ctx, uow, sessionId, userId)
	if err != nil {
		return nil, err
	}

	return sessionProjection(refreshed), nil
}

// DeleteSession removes the session and its messages. The bool result keeps
// missing-session semantics a non-error for idempotent callers.
func (cs *chatService) DeleteSession(ctx context.Context, sessionId uuid.UUID, userId string) (bool, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return false, err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return false, err
	}

	if err := uow.Commit(); err != nil {
		return false, err
	}

	cs.log.Info("chat", "deleted chat session", map[string]interface{}{
		"session_id": sessionId.String(),
	})

	return true, nil
}

// SendMessage persists the user turn, invokes the bound (or default) model
// deployment with a bounded history window, and persists the reply.
func (cs *chatService) SendMessage(ctx context.Context, sessionId uuid.UUID, userId string, message string) (*dto.ChatMessageResponse, error) {
	response, err := cs.sendMessage(ctx, sessionId, userId, message)
	if err != nil {
		cs.log.Error("chat", "error processing chat message", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}
	return response, nil
}

func (cs *chatService) sendMessage(ctx context.Context, sessionId uuid.UUID, userId string, message string) (*dto.ChatMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := cs.loadSession(ctx, uow, sessionId, userId)
	if err != nil {
		return nil, err
	}

	// Resolve the effective deployment: session binding first, registry
	// default second
	deployment := session.ModelDeployment
	if deployment == nil {
		deployment, err = uow.ModelDeploymentRepository().FindOne(ctx,
			specification.DefaultOnly{},
			specification.ActiveOnly{},
		)
		if err != nil {
			return nil, err
		}
		if deployment == nil {
			return nil, apperror.BusinessRule("No model deployment available for this session")
		}
	}

	// The user turn is persisted before the model call so input survives a
	// downstream failure. No compensating delete happens on error.
	userMessage := entity.ChatMessage{
		SessionId:  sessionId,
		Content:    message,
		Role:       constant.ChatMessageRoleUser,
		UserId:     userId,
		TokenCount: EstimateTokenCount(message),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	history := BuildChatHistory(session.Messages, message, cs.chatCfg.HistoryWindow)

	reply, err := cs.llmClient.Chat(ctx, llm.DeploymentConfig{
		Endpoint:       deployment.Endpoint,
		DeploymentName: deployment.DeploymentName,
		ApiKey:         deployment.ApiKey,
	}, history,
		llm.WithMaxTokens(cs.chatCfg.MaxTokens),
		llm.WithTemperature(cs.chatCfg.Temperature),
		llm.WithTopP(cs.chatCfg.TopP),
	)
	if err != nil {
		return nil, apperror.Upstream("The model backend failed to produce a response", err)
	}
	if reply == "" {
		reply = constant.EmptyReplyFallback
	}

	assistantMessage := entity.ChatMessage{
		SessionId:  sessionId,
		Content:    reply,
		Role:       constant.ChatMessageRoleAssistant,
		UserId:     userId,
		TokenCount: EstimateTokenCount(reply),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, &assistantMessage); err != nil {
		return nil, err
	}
	if err := uow.ChatSessionRepository().TouchUpdatedAt(ctx, sessionId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.log.Info("chat", "processed chat message", map[string]interface{}{
		"session_id": sessionId.String(),
		"model_name": deployment.Name,
	})

	projection := messageProjection(&assistantMessage)
	return &projection, nil
}

// GetActiveDeployments lists the deployments a chat client may pick from.
// Endpoint and credentials stay server-side.
func (cs *chatService) GetActiveDeployments(ctx context.Context) ([]*dto.ActiveDeploymentResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	deployments, err := uow.ModelDeploymentRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ActiveDeploymentResponse, 0, len(deployments))
	for _, d := range deployments {
		response = append(response, &dto.ActiveDeploymentResponse{
			Id:          d.Id,
			Name:        d.Name,
			ModelType:   d.ModelType,
			Description: d.Description,
			IsActive:    d.IsActive,
			IsDefault:   d.IsDefault,
		})
	}

	return response, nil
}

func (cs *chatService) loadSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, userId string) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
		specification.Preload{Association: "Messages"},
		specification.Preload{Association: "ModelDeployment"},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session %s not found", sessionId)
	}
	return session, nil
}

// EstimateTokenCount approximates usage as one token per four characters.
// Kept deliberately crude; clients only use it for rough accounting.
func EstimateTokenCount(text string) int {
	length := utf8.RuneCountInString(text)
	return (length + 3) / 4
}

// BuildChatHistory assembles the context window sent upstream: the fixed
// system prompt, the most recent `window` prior turns in chronological order,
// then the new user message. Roles other than user/assistant are skipped.
func BuildChatHistory(prior []entity.ChatMessage, newMessage string, window int) []llm.Message {
	ordered := orderedByTimestamp(prior)
	if len(ordered) > window {
		ordered = ordered[len(ordered)-window:]
	}

	history := make([]llm.Message, 0, len(ordered)+2)
	history = append(history, llm.Message{
		Role:    "system",
		Content: constant.ChatSystemPrompt,
	})

	for _, msg := range ordered {
		if msg.Role != constant.ChatMessageRoleUser && msg.Role != constant.ChatMessageRoleAssistant {
			continue
		}
		history = append(history, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: newMessage,
	})

	return history
}

func orderedByTimestamp(messages []entity.ChatMessage) []entity.ChatMessage {
	ordered := make([]entity.ChatMessage, len(messages))
	copy(ordered, messages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	return ordered
}

func sessionProjection(s *entity.ChatSession) *dto.ChatSessionResponse {
	response := &dto.ChatSessionResponse{
		Id:                s.Id,
		Title:             s.Title,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		MessageCount:      len(s.Messages),
		ModelDeploymentId: s.ModelDeploymentId,
	}

	if s.ModelDeployment != nil {
		name := s.ModelDeployment.Name
		response.ModelDeploymentName = &name
	}

	if len(s.Messages) > 0 {
		ordered := orderedByTimestamp(s.Messages)
		last := ordered[len(ordered)-1].Content
		response.LastMessage = &last
	}

	return response
}

func messageProjection(m *entity.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Id:         m.Id,
		SessionId:  m.SessionId,
		Content:    m.Content,
		Role:       m.Role,
		Timestamp:  m.Timestamp,
		TokenCount: m.TokenCount,
	}
}
