package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solines/hotelquote-api/internal/config"
	domainRepo "github.com/solines/hotelquote-api/internal/domain/repository"
	"github.com/solines/hotelquote-api/internal/presentation/http/handler"
	"github.com/solines/hotelquote-api/internal/presentation/http/middleware"
	"github.com/solines/hotelquote-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Draft   *handler.DraftHandler
	Quote   *handler.QuoteHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	// Catalog
	registerCatalogRoutes(protected, h)

	// Drafts
	registerDraftRoutes(protected, h, deps)

	// Quotes
	registerQuoteRoutes(protected, h)
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	catalog := protected.Group("/catalog")
	{
		catalog.GET("/products", h.Catalog.ListProducts)
		catalog.GET("/customers", h.Catalog.ListCustomers)
		catalog.POST("/refresh", h.Catalog.RefreshCatalog)
	}
}

func registerDraftRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	drafts := protected.Group("/drafts")

	// Per-user rate limiter for the suggestion endpoint; generation calls
	// are the one metered upstream resource
	suggestLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	{
		drafts.POST("", h.Draft.CreateDraft)
		drafts.GET("/:id", h.Draft.GetDraft)
		drafts.PATCH("/:id", h.Draft.UpdateDraft)
		drafts.DELETE("/:id", h.Draft.DeleteDraft)
		drafts.POST("/:id/items", h.Draft.AddItem)
		drafts.PATCH("/:id/items/:product_id", h.Draft.UpdateItem)
		drafts.DELETE("/:id/items/:product_id", h.Draft.RemoveItem)
		drafts.PUT("/:id/discount", h.Draft.SetDiscount)
		drafts.POST("/:id/suggest", suggestLimiter.Middleware(), h.Draft.Suggest)
		// Submission uses idempotency middleware so a retried request
		// cannot create a second quote
		drafts.POST("/:id/submit", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Draft.Submit)
	}
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers) {
	quotes := protected.Group("/quotes")
	{
		quotes.GET("", h.Quote.List)
		quotes.GET("/:id", h.Quote.Get)
		quotes.POST("/:id/email", h.Quote.EmailDocument)
	}
}
