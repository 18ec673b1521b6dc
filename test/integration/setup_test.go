package integration

import (
	"testing"

	"voidbitz-chat-be/internal/bootstrap"
	"voidbitz-chat-be/internal/config"
	"voidbitz-chat-be/internal/model"
	"voidbitz-chat-be/internal/server"
	"voidbitz-chat-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// setupApp boots the full HTTP stack against the real database. Tests are
// skipped when no connection string is configured.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	if err := db.AutoMigrate(&model.ModelDeployment{}, &model.ChatSession{}, &model.ChatMessage{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	return srv.GetApp(), db
}
