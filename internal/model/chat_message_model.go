package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	Role       string    `gorm:"type:varchar(20);not null"`
	Timestamp  time.Time `gorm:"autoCreateTime;index"`
	TokenCount int       `gorm:"not null;default:0"`
	UserId     string    `gorm:"type:varchar(50);index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
