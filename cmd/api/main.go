package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solines/hotelquote-api/internal/application/builder"
	"github.com/solines/hotelquote-api/internal/application/service"
	"github.com/solines/hotelquote-api/internal/config"
	"github.com/solines/hotelquote-api/internal/infrastructure/database"
	"github.com/solines/hotelquote-api/internal/infrastructure/docgen"
	"github.com/solines/hotelquote-api/internal/infrastructure/llm"
	"github.com/solines/hotelquote-api/internal/infrastructure/repository"
	"github.com/solines/hotelquote-api/internal/presentation/http/handler"
	"github.com/solines/hotelquote-api/internal/presentation/http/routes"
	"github.com/solines/hotelquote-api/pkg/email"
	"github.com/solines/hotelquote-api/pkg/oauth"
	"github.com/solines/hotelquote-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Periodically purge expired idempotency keys
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: Failed to clean up idempotency keys: %v", err)
			}
		}
	}()

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize external clients
	geminiClient := llm.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	docgenClient := docgen.NewClient(cfg.DocGen.Endpoint, cfg.DocGen.APIKey)

	// Initialize the in-memory draft store
	draftStore := builder.NewStore(builder.StoreConfig{
		EntryTTL:        cfg.Drafts.TTL,
		CleanupInterval: cfg.Drafts.CleanupInterval,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	catalogService := service.NewCatalogService(productRepo, customerRepo)
	suggestionService := service.NewSuggestionService(geminiClient)
	quoteService := service.NewQuoteService(quoteRepo, customerRepo, docgenClient, emailService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Draft:   handler.NewDraftHandler(draftStore, catalogService, suggestionService, quoteService),
		Quote:   handler.NewQuoteHandler(quoteService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
