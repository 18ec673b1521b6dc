package bootstrap

import (
	"time"

	"voidbitz-chat-be/internal/config"
	"voidbitz-chat-be/internal/controller"
	"voidbitz-chat-be/internal/pkg/logger"
	"voidbitz-chat-be/internal/repository/unitofwork"
	"voidbitz-chat-be/internal/service"
	"voidbitz-chat-be/pkg/llm/azureopenai"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	DeploymentController controller.IDeploymentController
	HealthController     controller.IHealthController

	// Core facades exposed for middleware wiring
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. LLM Client
	llmClient := azureopenai.NewAzureOpenAIClient(
		time.Duration(cfg.Chat.RequestTimeout) * time.Second,
	)

	// 3. Services
	chatService := service.NewChatService(uowFactory, llmClient, cfg.Chat, sysLogger)
	deploymentService := service.NewDeploymentService(uowFactory, llmClient, sysLogger)

	// 4. Controllers
	chatController := controller.NewChatController(chatService)
	deploymentController := controller.NewDeploymentController(deploymentService)
	healthController := controller.NewHealthController(db)

	return &Container{
		ChatController:       chatController,
		DeploymentController: deploymentController,
		HealthController:     healthController,
		Logger:               sysLogger,
	}
}
