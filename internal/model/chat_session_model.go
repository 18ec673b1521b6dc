package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title             string     `gorm:"type:varchar(200);not null"`
	UserId            string     `gorm:"type:varchar(50);index"` // User ownership for data isolation
	ModelDeploymentId *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`

	// Deleting a deployment severs the link; deleting a session removes its messages.
	ModelDeployment *ModelDeployment `gorm:"foreignKey:ModelDeploymentId;constraint:OnDelete:SET NULL"`
	Messages        []ChatMessage    `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
