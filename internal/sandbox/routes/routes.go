package routes

import (
	"zeelx/internal/config"
	"zeelx/internal/sandbox/handlers"
	"zeelx/internal/sandbox/middleware"
	"zeelx/internal/sandbox/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(db, cfg)
	walletService := services.NewWalletService(db)
	loanService := services.NewLoanService(db)
	profileService := services.NewProfileService(db)
	withdrawalService := services.NewWithdrawalService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService)
	loanHandler := handlers.NewLoanHandler(loanService, profileService)
	profileHandler := handlers.NewProfileHandler(profileService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group, matching the mobile client's base URL
	api := app.Group("/api")

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	authRoutes.Put("/change-password", middleware.AuthMiddleware(cfg), authHandler.ChangePassword)

	// Wallet routes
	walletRoutes := api.Group("/wallet")
	walletRoutes.Use(middleware.AuthMiddleware(cfg))
	walletRoutes.Get("/", walletHandler.Get)
	walletRoutes.Post("/deposit", walletHandler.CreateDeposit)
	walletRoutes.Post("/check-payment/:id", walletHandler.CheckPayment)
	walletRoutes.Get("/history", walletHandler.History)

	// Loan routes
	loanRoutes := api.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	loanRoutes.Get("/my-loans", loanHandler.MyLoans)
	loanRoutes.Post("/request-approved", loanHandler.RequestApproved)
	loanRoutes.Post("/verify", loanHandler.Verify)
	loanRoutes.Get("/:id", loanHandler.Get)
	loanRoutes.Post("/:id/pay", loanHandler.Pay)
	loanRoutes.Post("/:id/extend", loanHandler.Extend)

	// Profile routes
	profileRoutes := api.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	profileRoutes.Get("/", profileHandler.Get)
	profileRoutes.Post("/", profileHandler.Submit)

	// Withdrawal routes
	withdrawalRoutes := api.Group("/withdrawals")
	withdrawalRoutes.Use(middleware.AuthMiddleware(cfg))
	withdrawalRoutes.Post("/", withdrawalHandler.Create)
	withdrawalRoutes.Get("/", withdrawalHandler.List)
	withdrawalRoutes.Delete("/:id", withdrawalHandler.Cancel)
}
