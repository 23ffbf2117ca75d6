package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tastebud-ai/backend/config"
	"github.com/tastebud-ai/backend/internal/api"
	"github.com/tastebud-ai/backend/internal/catalog"
	"github.com/tastebud-ai/backend/internal/database"
	"github.com/tastebud-ai/backend/internal/middleware"
	"github.com/tastebud-ai/backend/internal/router"
	"github.com/tastebud-ai/backend/internal/service"
)

// Server wires configuration, storage and services into a running HTTP
// server.
type Server struct {
	cfg  *config.Config
	db   *gorm.DB
	http *http.Server
}

// New builds a fully wired server from configuration. Redis and S3 are
// optional: without Redis the catalog cache and generation rate limit
// are skipped, without S3 exports fall back to direct download.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var redisClient *redis.Client
	if redisClient, err = database.NewRedisClient(cfg); err != nil {
		log.Printf("Redis unavailable, continuing without cache and rate limits: %v", err)
		redisClient = nil
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Printf("S3 unavailable, exports will download directly: %v", err)
		s3cfg = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	llmService := service.NewLLMService(cfg)
	mealPlanService := service.NewMealPlanService(llmService)
	exportService, err := service.NewExportService(cfg.ShareBaseURL)
	if err != nil {
		return nil, err
	}
	shareService := service.NewShareService(s3cfg, cfg.AWSRegion)
	loader := catalog.NewLoader(cfg.CatalogURL, redisClient)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewGenerationRateLimiter(redisClient)
	}

	handlers := router.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Recipe:   api.NewRecipeHandler(recipeService, authService),
		Catalog:  api.NewCatalogHandler(loader),
		Generate: api.NewGenerateHandler(llmService, mealPlanService, authService, limiter),
		Export:   api.NewExportHandler(exportService, shareService, authService),
	}

	engine := router.SetupRouter(handlers, allowedOrigins())

	return &Server{
		cfg: cfg,
		db:  db,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

func allowedOrigins() []string {
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		return []string{origins}
	}
	return nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
