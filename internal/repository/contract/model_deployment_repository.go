package contract

import (
	"context"

	"voidbitz-chat-be/internal/entity"
	"voidbitz-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ModelDeploymentRepository interface {
	Create(ctx context.Context, deployment *entity.ModelDeployment) error
	Update(ctx context.Context, deployment *entity.ModelDeployment) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClearDefaults unsets is_default on every deployment except the given id
	// (uuid.Nil clears all). Callers wrap this in the same transaction as the
	// write that promotes the new default.
	ClearDefaults(ctx context.Context, exceptId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ModelDeployment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ModelDeployment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
