package service

import (
	"context"

	"voidbitz-chat-be/internal/apperror"
	"voidbitz-chat-be/internal/dto"
	"voidbitz-chat-be/internal/entity"
	"voidbitz-chat-be/internal/pkg/logger"
	"voidbitz-chat-be/internal/repository/specification"
	"voidbitz-chat-be/internal/repository/unitofwork"
	"voidbitz-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// IDeploymentService defines the model deployment registry interface
type IDeploymentService interface {
	List(ctx context.Context) ([]*dto.ModelDeploymentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ModelDeploymentResponse, error)
	Create(ctx context.Context, request *dto.CreateModelDeploymentRequest) (*dto.ModelDeploymentResponse, error)
	Update(ctx context.Context, id uuid.UUID, request *dto.UpdateModelDeploymentRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	TestConnection(ctx context.Context, id uuid.UUID) (*dto.TestConnectionResponse, error)
}

type deploymentService struct {
	uowFactory unitofwork.RepositoryFactory
	llmClient  llm.ChatClient
	log        logger.ILogger
}

func NewDeploymentService(
	uowFactory unitofwork.RepositoryFactory,
	llmClient llm.ChatClient,
	log logger.ILogger,
) IDeploymentService {
	return &deploymentService{
		uowFactory: uowFactory,
		llmClient:  llmClient,
		log:        log,
	}
}

func (ds *deploymentService) List(ctx context.Context) ([]*dto.ModelDeploymentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	deployments, err := uow.ModelDeploymentRepository().FindAll(ctx,
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ModelDeploymentResponse, 0, len(deployments))
	for _, d := range deployments {
		referenced, err := uow.ChatSessionRepository().Count(ctx,
			specification.ByDeploymentID{DeploymentID: d.Id},
		)
		if err != nil {
			return nil, err
		}
		response = append(response, deploymentProjection(d, referenced > 0))
	}

	return response, nil
}

func (ds *deploymentService) Get(ctx context.Context, id uuid.UUID) (*dto.ModelDeploymentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	deployment, err := uow.ModelDeploymentRepository().FindOne(ctx,
		specification.ByID{ID: id},
	)
	if err != nil {
		return nil, err
	}
	if deployment == nil {
		return nil, apperror.NotFound("Model deployment %s not found", id)
	}

	referenced, err := uow.ChatSessionRepository().Count(ctx,
		specification.ByDeploymentID{DeploymentID: id},
	)
	if err != nil {
		return nil, err
	}

	return deploymentProjection(deployment, referenced > 0), nil
}

// Create registers a new deployment. When the request marks it as default
// every other default flag is cleared in the same transaction.
func (ds *deploymentService) Create(ctx context.Context, request *dto.CreateModelDeploymentRequest) (*dto.ModelDeploymentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ModelDeploymentRepository().FindOne(ctx,
		specification.ByName{Name: request.Name},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Validation("A model deployment named '%s' already exists", request.Name)
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}

	modelType := request.ModelType
	if modelType == "" {
		modelType = "gpt-4"
	}

	deployment := entity.ModelDeployment{
		Id:             uuid.New(),
		Name:           request.Name,
		DeploymentName: request.DeploymentName,
		Endpoint:       request.Endpoint,
		ApiKey:         request.ApiKey,
		ModelType:      modelType,
		Description:    request.Description,
		IsActive:       isActive,
		IsDefault:      request.IsDefault,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if deployment.IsDefault {
		if err := uow.ModelDeploymentRepository().ClearDefaults(ctx, deployment.Id); err != nil {
			return nil, err
		}
	}
	if err := uow.ModelDeploymentRepository().Create(ctx, &deployment); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	ds.log.Info("deployment", "created model deployment", map[string]interface{}{
		"deployment_id": deployment.Id.String(),
		"name":          deployment.Name,
	})

	return deploymentProjection(&deployment, false), nil
}

// Update is a full replace of the mutable fields. A blank api key keeps the
// stored secret.
func (ds *deploymentService) Update(ctx context.Context, id uuid.UUID, request *dto.UpdateModelDeploymentRequest) error {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	deployment, err := uow.ModelDeploymentRepository().FindOne(ctx,
		specification.ByID{ID: id},
	)
	if err != nil {
		return err
	}
	if deployment == nil {
		return apperror.NotFound("Model deployment %s not found", id)
	}

	if request.Name != deployment.Name {
		collision, err := uow.ModelDeploymentRepository().FindOne(ctx,
			specification.ByName{Name: request.Name},
		)
		if err != nil {
			return err
		}
		if collision != nil {
			return apperror.Validation("A model deployment named '%s' already exists", request.Name)
		}
	}

	deployment.Name = request.Name
	deployment.DeploymentName = request.DeploymentName
	deployment.Endpoint = request.Endpoint
	deployment.ModelType = request.ModelType
	deployment.Description = request.Description
	deployment.IsActive = request.IsActive
	deployment.IsDefault = request.IsDefault
	if request.ApiKey != "" {
		deployment.ApiKey = request.ApiKey
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if deployment.IsDefault {
		if err := uow.ModelDeploymentRepository().ClearDefaults(ctx, deployment.Id); err != nil {
			return err
		}
	}
	if err := uow.ModelDeploymentRepository().Update(ctx, deployment); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	ds.log.Info("deployment", "updated model deployment", map[string]interface{}{
		"deployment_id": id.String(),
	})

	return nil
}

// Delete refuses to remove a deployment any chat session still references.
// The reference check and the delete run in one transaction with the row
// locked, so a concurrent session create cannot slip in between them.
func (ds *deploymentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	deployment, err := uow.ModelDeploymentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ForUpdate{},
	)
	if err != nil {
		return err
	}
	if deployment == nil {
		return apperror.NotFound("Model deployment %s not found", id)
	}

	referenced, err := uow.ChatSessionRepository().Count(ctx,
		specification.ByDeploymentID{DeploymentID: id},
	)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return apperror.BusinessRule("Cannot delete model deployment that is referenced by existing chat sessions")
	}

	if err := uow.ModelDeploymentRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	ds.log.Info("deployment", "deleted model deployment", map[string]interface{}{
		"deployment_id": id.String(),
		"name":          deployment.Name,
	})

	return nil
}

// TestConnection probes the remote endpoint with the stored credentials.
// Probe failures are reported in the payload, not as errors.
func (ds *deploymentService) TestConnection(ctx context.Context, id uuid.UUID) (*dto.TestConnectionResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	deployment, err := uow.ModelDeploymentRepository().FindOne(ctx,
		specification.ByID{ID: id},
	)
	if err != nil {
		return nil, err
	}
	if deployment == nil {
		return nil, apperror.NotFound("Model deployment %s not found", id)
	}

	result := ds.llmClient.Probe(ctx, llm.DeploymentConfig{
		Endpoint:       deployment.Endpoint,
		DeploymentName: deployment.DeploymentName,
		ApiKey:         deployment.ApiKey,
	})

	response := &dto.TestConnectionResponse{
		IsSuccessful: result.Reachable,
		Message:      result.Message,
	}
	// Elapsed time is only meaningful for a completed round trip
	if result.Reachable {
		elapsedMs := result.Elapsed.Milliseconds()
		response.ResponseTimeMs = &elapsedMs
	}
	return response, nil
}

func deploymentProjection(d *entity.ModelDeployment, referenced bool) *dto.ModelDeploymentResponse {
	return &dto.ModelDeploymentResponse{
		Id:                  d.Id,
		Name:                d.Name,
		DeploymentName:      d.DeploymentName,
		Endpoint:            d.Endpoint,
		ModelType:           d.ModelType,
		Description:         d.Description,
		IsActive:            d.IsActive,
		IsDefault:           d.IsDefault,
		IsReferencedByChats: referenced,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
