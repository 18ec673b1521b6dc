package implementation

import (
	"context"
	"errors"

	"voidbitz-chat-be/internal/entity"
	"voidbitz-chat-be/internal/mapper"
	"voidbitz-chat-be/internal/model"
	"voidbitz-chat-be/internal/repository/contract"
	"voidbitz-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModelDeploymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DeploymentMapper
}

func NewModelDeploymentRepository(db *gorm.DB) contract.ModelDeploymentRepository {
	return &ModelDeploymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDeploymentMapper(),
	}
}

func (r *ModelDeploymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ModelDeploymentRepositoryImpl) Create(ctx context.Context, deployment *entity.ModelDeployment) error {
	if deployment.Id == uuid.Nil {
		deployment.Id = uuid.New()
	}
	m := r.mapper.ToModel(deployment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*deployment = *r.mapper.ToEntity(m)
	return nil
}

func (r *ModelDeploymentRepositoryImpl) Update(ctx context.Context, deployment *entity.ModelDeployment) error {
	m := r.mapper.ToModel(deployment)
	// Save with Select(*) so false booleans are written too
	if err := r.db.WithContext(ctx).Model(m).Select("*").Omit("created_at").Updates(m).Error; err != nil {
		return err
	}
	*deployment = *r.mapper.ToEntity(m)
	return nil
}

func (r *ModelDeploymentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ModelDeployment{}, "id = ?", id).Error
}

func (r *ModelDeploymentRepositoryImpl) ClearDefaults(ctx context.Context, exceptId uuid.UUID) error {
	query := r.db.WithContext(ctx).
		Model(&model.ModelDeployment{}).
		Where("is_default = ?", true)
	if exceptId != uuid.Nil {
		query = query.Where("id <> ?", exceptId)
	}
	return query.Update("is_default", false).Error
}

func (r *ModelDeploymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ModelDeployment, error) {
	var m model.ModelDeployment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ModelDeploymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ModelDeployment, error) {
	var models []*model.ModelDeployment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ModelDeployment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ModelDeploymentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ModelDeployment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
