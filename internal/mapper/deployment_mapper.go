package mapper

import (
	"voidbitz-chat-be/internal/entity"
	"voidbitz-chat-be/internal/model"
)

type DeploymentMapper struct{}

func NewDeploymentMapper() *DeploymentMapper {
	return &DeploymentMapper{}
}

func (m *DeploymentMapper) ToEntity(d *model.ModelDeployment) *entity.ModelDeployment {
	if d == nil {
		return nil
	}

	return &entity.ModelDeployment{
		Id:             d.Id,
		Name:           d.Name,
		DeploymentName: d.DeploymentName,
		Endpoint:       d.Endpoint,
		ApiKey:         d.ApiKey,
		ModelType:      d.ModelType,
		Description:    d.Description,
		IsActive:       d.IsActive,
		IsDefault:      d.IsDefault,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (m *DeploymentMapper) ToModel(d *entity.ModelDeployment) *model.ModelDeployment {
	if d == nil {
		return nil
	}

	return &model.ModelDeployment{
		Id:             d.Id,
		Name:           d.Name,
		DeploymentName: d.DeploymentName,
		Endpoint:       d.Endpoint,
		ApiKey:         d.ApiKey,
		ModelType:      d.ModelType,
		Description:    d.Description,
		IsActive:       d.IsActive,
		IsDefault:      d.IsDefault,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
