package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title             string     `json:"title" validate:"max=200"`
	ModelDeploymentId *uuid.UUID `json:"model_deployment_id,omitempty"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"max=200"`
}

type SendMessageRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message" validate:"required"`
}

type ChatSessionResponse struct {
	Id                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	MessageCount        int        `json:"message_count"`
	LastMessage         *string    `json:"last_message,omitempty"`
	ModelDeploymentId   *uuid.UUID `json:"model_deployment_id,omitempty"`
	ModelDeploymentName *string    `json:"model_deployment_name,omitempty"`
}

type ChatSessionDetailResponse struct {
	ChatSessionResponse
	Messages []ChatMessageResponse `json:"messages"`
}

type ChatMessageResponse struct {
	Id         uuid.UUID `json:"id"`
	SessionId  uuid.UUID `json:"session_id"`
	Content    string    `json:"content"`
	Role       string    `json:"role"`
	Timestamp  time.Time `json:"timestamp"`
	TokenCount int       `json:"token_count"`
}
