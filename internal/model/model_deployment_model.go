package model

import (
	"time"

	"github.com/google/uuid"
)

type ModelDeployment struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	DeploymentName string    `gorm:"type:varchar(100);not null"` // backend-specific model identifier
	Endpoint       string    `gorm:"type:varchar(500);not null"`
	ApiKey         string    `gorm:"type:varchar(500);not null"`
	ModelType      string    `gorm:"type:varchar(50);not null;default:'gpt-4'"`
	Description    string    `gorm:"type:varchar(1000)"`
	IsActive       bool      `gorm:"default:true;index"`
	IsDefault      bool      `gorm:"default:false;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (ModelDeployment) TableName() string {
	return "model_deployments"
}
