package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"yogadesk-backend/config"
	"yogadesk-backend/models"
	"yogadesk-backend/routes"
	"yogadesk-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.ReminderLog{},
		&models.Settings{},
	)

	seedSettings()
}

// seedSettings creates the singleton settings row on first boot.
func seedSettings() {
	var settings models.Settings
	err := config.DB.First(&settings).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to read settings: %v", err)
		return
	}
	defaults := models.DefaultSettings()
	if err := config.DB.Create(&defaults).Error; err != nil {
		log.Printf("Failed to seed settings: %v", err)
	}
}

func main() {

	reminderSvc := services.NewReminderService(config.DB)
	reminderSvc.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(reminderSvc)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
