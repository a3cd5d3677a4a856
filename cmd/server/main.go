package main

import (
	"context"
	"log"

	"faculty-portal-api/internal/config"
	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/logging"
	"faculty-portal-api/internal/routes"
	"faculty-portal-api/internal/sweeper"
)

func main() {
	cfg := config.Load()

	logging.Init(cfg.LogFile)

	// Init database and seed default accounts on first run
	database.InitDB(cfg.DatabasePath)
	if err := database.Seed(database.GetDB()); err != nil {
		log.Fatal("Failed to seed database: ", err)
	}

	// Background job: demote overdue tasks
	overdueSweeper := sweeper.New(database.GetDB(), cfg.SweepInterval, logging.Logger)
	overdueSweeper.Start(context.Background())
	defer overdueSweeper.Stop()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	logging.Logger.WithField("port", cfg.Port).Info("server starting")
	log.Println("API endpoints:")
	log.Println("  POST   /api/auth/login")
	log.Println("  GET    /api/auth/me")
	log.Println("  POST   /api/auth/register")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  PATCH  /api/tasks/:id/start")
	log.Println("  POST   /api/tasks/:id/submit")
	log.Println("  POST   /api/tasks/:id/review")
	log.Println("  GET    /api/tasks/:id/submissions")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
