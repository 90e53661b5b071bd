package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/celebot/backend/internal/notifier"
	"github.com/celebot/backend/internal/router"
	"github.com/celebot/backend/pkg/config"
	"github.com/celebot/backend/pkg/firebase"
	"github.com/celebot/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase when credentials are configured. Without them
	// the service falls back to local JWT auth and skips push delivery.
	ctx := context.Background()
	var authClient *auth.Client
	var notif notifier.Notifier = notifier.NoopNotifier{}
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
		notif = notifier.NewFCMNotifier(firebaseApp.MessagingClient)
	} else {
		log.Println("Firebase credentials not configured; push notifications disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, cfg.RequestTimeout)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, authClient, notif)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
