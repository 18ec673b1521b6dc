package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters messages belonging to one session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// OwnedBy filters rows by their owner. An empty user id matches everything,
// mirroring the optional user filter at the API boundary.
type OwnedBy struct {
	UserID string
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	if s.UserID == "" {
		return db
	}
	return db.Where("user_id = ?", s.UserID)
}

// ByDeploymentID filters sessions bound to a deployment
type ByDeploymentID struct {
	DeploymentID uuid.UUID
}

func (s ByDeploymentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("model_deployment_id = ?", s.DeploymentID)
}
