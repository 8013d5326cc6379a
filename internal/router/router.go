package router

import (
	"log"

	"github.com/avelines/giftwell/backend/internal/handlers"
	"github.com/avelines/giftwell/backend/internal/middleware"
	"github.com/avelines/giftwell/backend/internal/models"
	"github.com/avelines/giftwell/backend/internal/repositories"
	"github.com/avelines/giftwell/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, logger *zap.Logger) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Category{},
		&models.CategoryMember{},
		&models.Gift{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories and Services ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	friendsService := services.NewFriendsService(pgdb, logger)
	wishlistService := services.NewWishlistService(pgdb, logger)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Friendship routes
	friendshipHandler := handlers.NewFriendshipHandler(friendsService)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	// Category routes
	categoryHandler := handlers.NewCategoryHandler(wishlistService)
	categoryHandler.RegisterCategoryRoutes(api)
	log.Println("Category routes configured.")

	// Gift routes
	giftHandler := handlers.NewGiftHandler(wishlistService)
	giftHandler.RegisterGiftRoutes(api)
	log.Println("Gift routes configured.")

	// Wishlist read routes
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	wishlistHandler.RegisterWishlistRoutes(api)
	log.Println("Wishlist routes configured.")

	log.Println("All routes configured.")
}
