package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id                uuid.UUID
	Title             string
	UserId            string
	ModelDeploymentId *uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Loaded on demand by the repository
	ModelDeployment *ModelDeployment
	Messages        []ChatMessage
}
