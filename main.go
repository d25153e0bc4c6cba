package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/acadmatch/academic-matchmaker/config"
	"github.com/acadmatch/academic-matchmaker/database"
	"github.com/acadmatch/academic-matchmaker/llm"
	"github.com/acadmatch/academic-matchmaker/models"
	"github.com/acadmatch/academic-matchmaker/router"
	"github.com/acadmatch/academic-matchmaker/services"
	"github.com/acadmatch/academic-matchmaker/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.SeedDemoData(db); err != nil {
		utils.ErrorLogger.Printf("Demo seed failed: %v", err)
	}

	llmClient := llm.NewFromEnv()
	if llmClient.Enabled() {
		utils.InfoLogger.Printf("LLM text service enabled (%s)", llmClient.Endpoint)
	} else {
		utils.InfoLogger.Println("LLM text service disabled, smart match runs on keyword fallback")
	}

	// Poller pushing new messages/notifications/posts to websocket clients
	monitor := services.NewChangeMonitor(db)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, llmClient)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Professor{},
		&models.Student{},
		&models.Post{},
		&models.Chat{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
