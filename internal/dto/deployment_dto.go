package dto

import (
	"time"

	"github.com/google/uuid"
)

// ModelDeploymentResponse is the admin projection. The api key is write-only
// and never round-tripped back to clients.
type ModelDeploymentResponse struct {
	Id                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	DeploymentName      string    `json:"deployment_name"`
	Endpoint            string    `json:"endpoint"`
	ModelType           string    `json:"model_type"`
	Description         string    `json:"description,omitempty"`
	IsActive            bool      `json:"is_active"`
	IsDefault           bool      `json:"is_default"`
	IsReferencedByChats bool      `json:"is_referenced_by_chats"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ActiveDeploymentResponse is the chat-facing projection: no endpoint, no key.
type ActiveDeploymentResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ModelType   string    `json:"model_type"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsDefault   bool      `json:"is_default"`
}

type CreateModelDeploymentRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	DeploymentName string `json:"deployment_name" validate:"required,max=100"`
	Endpoint       string `json:"endpoint" validate:"required,url,max=500"`
	ApiKey         string `json:"api_key" validate:"required,max=500"`
	ModelType      string `json:"model_type" validate:"max=50"`
	Description    string `json:"description" validate:"max=1000"`
	IsActive       *bool  `json:"is_active,omitempty"`
	IsDefault      bool   `json:"is_default"`
}

// UpdateModelDeploymentRequest is a full replace. A blank ApiKey keeps the
// stored secret; a non-empty value overwrites it.
type UpdateModelDeploymentRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	DeploymentName string `json:"deployment_name" validate:"required,max=100"`
	Endpoint       string `json:"endpoint" validate:"required,url,max=500"`
	ApiKey         string `json:"api_key" validate:"max=500"`
	ModelType      string `json:"model_type" validate:"max=50"`
	Description    string `json:"description" validate:"max=1000"`
	IsActive       bool   `json:"is_active"`
	IsDefault      bool   `json:"is_default"`
}

type TestConnectionResponse struct {
	IsSuccessful   bool   `json:"is_successful"`
	Message        string `json:"message"`
	ResponseTimeMs *int64 `json:"response_time_ms"`
}
