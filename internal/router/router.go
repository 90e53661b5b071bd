package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/celebot/backend/internal/handlers"
	"github.com/celebot/backend/internal/middleware"
	"github.com/celebot/backend/internal/models"
	"github.com/celebot/backend/internal/notifier"
	"github.com/celebot/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, requestTimeout time.Duration) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.RequestTimeout(requestTimeout))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient and notif may be nil/noop when Firebase is not
// configured; JWT auth then remains the only accepted credential.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, notif notifier.Notifier) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Pain{},
		&models.Translate{},
		&models.Reaction{},
		&models.Comment{},
		&models.CommentEdge{},
		&models.Tag{},
		&models.TagItem{},
		&models.Attachment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	painRepo := repositories.NewPostgresPainRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	tagRepo := repositories.NewPostgresTagRepository(pgdb)
	revisionRepo := repositories.NewMongoRevisionRepository(mgClient.Database("celebot"))

	if notif == nil {
		notif = notifier.NoopNotifier{}
	}

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT or Firebase authentication) ---
	api := e.Group("/api/v1")
	if firebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient, userRepo))
		log.Println("Firebase authentication middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuthMiddleware())
		log.Println("JWT authentication middleware applied to /api/v1 group.")
	}

	// Pain routes
	painHandler := handlers.NewPainHandler(painRepo, tagRepo, userRepo, revisionRepo)
	painHandler.RegisterPainRoutes(api)
	log.Println("Pain routes configured.")

	// Reaction routes
	reactionHandler := handlers.NewReactionHandler(reactionRepo, painRepo, userRepo, revisionRepo, notif)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, tagRepo, revisionRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	log.Println("All routes configured.")
}
