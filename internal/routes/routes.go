// Package routes defines the API routing configuration. It wires
// repositories into services and services into handlers, then groups routes
// by authorization requirement.
package routes

import (
	"cardbank/internal/handlers"
	"cardbank/internal/middleware"
	"cardbank/internal/repositories"
	"cardbank/internal/services/auth"
	"cardbank/internal/services/card"
	"cardbank/internal/services/ledger"
	"cardbank/internal/services/limit"
	"cardbank/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	store := repositories.NewStore(db, repositories.CacheService)
	userRepo := repositories.NewUserRepository(db)

	limitCfg := limit.DefaultConfig()
	limitService := limit.NewService(store, limitCfg)
	ledgerService := ledger.NewService(store, limitCfg)
	transferService := transfer.NewService(store)
	cardService := card.NewService(store, userRepo, limitService)
	authService := auth.NewService(userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	cardHandler := handlers.NewCardHandler(cardService)
	txHandler := handlers.NewTransactionHandler(ledgerService)
	transferHandler := handlers.NewTransferHandler(transferService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	cards := api.Group("/cards", middleware.Auth)
	cards.Get("/my", cardHandler.GetMine)
	cards.Get("/:id", cardHandler.Get)
	cards.Get("/:id/transactions", txHandler.List)
	cards.Post("/:id/purchase", txHandler.Purchase)
	cards.Post("/:id/block-request", cardHandler.RequestBlock)

	api.Post("/transfer", middleware.Auth, transferHandler.Transfer)

	admin := api.Group("/admin", middleware.Auth, middleware.AdminOnly)
	admin.Post("/cards", cardHandler.Create)
	admin.Get("/cards", cardHandler.GetAll)
	admin.Delete("/cards/:id", cardHandler.Delete)
	admin.Put("/cards/:id/assign/:email", cardHandler.AssignToUser)
	admin.Put("/cards/:id/block", cardHandler.Block)
	admin.Put("/cards/:id/activate", cardHandler.Activate)
	admin.Post("/cards/:id/limits", cardHandler.SetLimit)
	admin.Post("/cards/:id/deposit", txHandler.Deposit)
	admin.Get("/block-requests", cardHandler.ListBlockRequests)
}
