package routes

import (
	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/handlers"
	"faculty-portal-api/internal/middleware"
	"faculty-portal-api/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Faculty Portal API is running",
		})
	})

	taskHandler := handlers.NewTaskHandler(service.NewTaskService(database.GetDB()))

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Auth
		protectedRoutes.GET("/auth/me", handlers.Me)

		// Task workflow endpoints
		protectedRoutes.GET("/tasks", taskHandler.GetTasks)
		protectedRoutes.GET("/tasks/by-user/:userId", taskHandler.GetTasksByUser)
		protectedRoutes.GET("/tasks/:id", taskHandler.GetTaskByID)
		protectedRoutes.POST("/tasks", taskHandler.CreateTask)
		protectedRoutes.PATCH("/tasks/:id/start", taskHandler.StartTask)
		protectedRoutes.POST("/tasks/:id/submit", taskHandler.SubmitTask)
		protectedRoutes.POST("/tasks/:id/review", taskHandler.ReviewTask)
		protectedRoutes.GET("/tasks/:id/submissions", taskHandler.ListSubmissions)

		// Users
		protectedRoutes.GET("/users", handlers.GetAllUsers)
		protectedRoutes.GET("/users/faculty", handlers.GetFacultyMembers)
		protectedRoutes.GET("/users/:id", handlers.GetUserByID)

		// Portfolios
		protectedRoutes.GET("/portfolios", handlers.GetPortfolios)
		protectedRoutes.GET("/portfolios/by-user/:userId", handlers.GetPortfolioByUser)
		protectedRoutes.PUT("/portfolios/by-user/:userId", handlers.UpsertPortfolio)
		protectedRoutes.DELETE("/portfolios/by-user/:userId", handlers.DeletePortfolio)

		// Realtime task events
		protectedRoutes.GET("/ws", handlers.TaskEventsWS)
	}

	// Supervisor-only routes
	hodRoutes := protectedRoutes.Group("")
	hodRoutes.Use(middleware.RequireSupervisor())
	{
		hodRoutes.POST("/auth/register", handlers.Register)
		hodRoutes.GET("/analytics/performance", handlers.GetFacultyPerformance)
		hodRoutes.GET("/analytics/trends", handlers.GetTaskTrends)
	}

	return ginRouter
}
