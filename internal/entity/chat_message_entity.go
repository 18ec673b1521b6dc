package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	Content    string
	Role       string
	Timestamp  time.Time
	TokenCount int
	UserId     string
}
