package entity

import (
	"time"

	"github.com/google/uuid"
)

type ModelDeployment struct {
	Id             uuid.UUID
	Name           string
	DeploymentName string
	Endpoint       string
	ApiKey         string
	ModelType      string
	Description    string
	IsActive       bool
	IsDefault      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
