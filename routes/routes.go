package routes

import (
	"yogadesk-backend/config"
	"yogadesk-backend/controllers"
	"yogadesk-backend/services"
	"yogadesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(reminderSvc *services.ReminderService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Member routes
		members := api.Group("/members")
		{
			members.POST("", controllers.CreateMember)
			members.GET("", controllers.GetMembers)
			members.GET("/check-mobile", controllers.CheckMobile)
			members.GET("/:id", controllers.GetMember)
			members.PUT("/:id", controllers.UpdateMember)
			members.POST("/:id/freeze", controllers.ToggleFreeze)
		}

		// Reminder routes
		reminderController := controllers.ReminderController{Svc: reminderSvc}
		members.POST("/:id/remind", reminderController.SendReminder)
		reminders := api.Group("/reminders")
		{
			reminders.POST("/bulk", reminderController.SendBulkReminders)
			reminders.GET("/logs", reminderController.GetReminderLogs)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.PUT("", controllers.UpdateSettings)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Attendance import
		api.POST("/attendance/import", controllers.ImportAttendance)
	}

	return r
}
