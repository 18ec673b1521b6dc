package main

import (
	"log"
	"os"

	"voidbitz-chat-be/internal/model"
	"voidbitz-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds the initial model deployment from env so a fresh install has a
// working default without touching the admin API first.
func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Model Deployment Seeder...")

	seedDefaultDeployment(db)

	log.Println("Success: seeding completed.")
}

func seedDefaultDeployment(db *gorm.DB) {
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	deploymentName := os.Getenv("AZURE_OPENAI_DEPLOYMENT")

	if endpoint == "" || apiKey == "" || deploymentName == "" {
		log.Println("Skipping: AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY and AZURE_OPENAI_DEPLOYMENT must all be set")
		return
	}

	var count int64
	if err := db.Model(&model.ModelDeployment{}).Where("name = ?", "Default").Count(&count).Error; err != nil {
		log.Fatal("Error: Failed to query deployments:", err)
	}
	if count > 0 {
		log.Println("Skipping: deployment 'Default' already exists")
		return
	}

	deployment := model.ModelDeployment{
		Id:             uuid.New(),
		Name:           "Default",
		DeploymentName: deploymentName,
		Endpoint:       endpoint,
		ApiKey:         apiKey,
		ModelType:      "gpt-4",
		Description:    "Seeded from environment",
		IsActive:       true,
		IsDefault:      true,
	}

	if err := db.Create(&deployment).Error; err != nil {
		log.Fatal("Error: Failed to create deployment:", err)
	}

	log.Printf("Created default deployment %s", deployment.Id)
}
