package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"zeelx/internal/config"
	"zeelx/internal/sandbox/middleware"
	"zeelx/internal/sandbox/models"
	"zeelx/internal/sandbox/routes"
	"zeelx/internal/sandbox/services"

	"github.com/gofiber/fiber/v2"

	_ "zeelx/docs" // Swagger docs
)

// @title ZeelX Sandbox API
// @version 1.0
// @description Wallet and microloan sandbox backend for the ZeelX client.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Nightly overdue sweep
	sweeper := services.NewSweeper(services.NewLoanService(db), cfg.Sandbox.SweeperSpec)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start overdue sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ZeelX Sandbox API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Sandbox.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Sandbox.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
