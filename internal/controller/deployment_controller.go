package controller

import (
	"voidbitz-chat-be/internal/apperror"
	"voidbitz-chat-be/internal/dto"
	"voidbitz-chat-be/internal/pkg/serverutils"
	"voidbitz-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDeploymentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	TestConnection(ctx *fiber.Ctx) error
}

type deploymentController struct {
	deploymentService service.IDeploymentService
}

func NewDeploymentController(deploymentService service.IDeploymentService) IDeploymentController {
	return &deploymentController{
		deploymentService: deploymentService,
	}
}

func (c *deploymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/deployment/v1")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/test", c.TestConnection)
}

func (c *deploymentController) List(ctx *fiber.Ctx) error {
	res, err := c.deploymentService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list model deployments", res))
}

func (c *deploymentController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("Invalid deployment id")
	}

	res, err := c.deploymentService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show model deployment", res))
}

func (c *deploymentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateModelDeploymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.deploymentService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create model deployment", res))
}

func (c *deploymentController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("Invalid deployment id")
	}

	var req dto.UpdateModelDeploymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.deploymentService.Update(ctx.Context(), id, &req); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *deploymentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("Invalid deployment id")
	}

	if err := c.deploymentService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *deploymentController) TestConnection(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("Invalid deployment id")
	}

	res, err := c.deploymentService.TestConnection(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Connection test completed", res))
}
