package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/api"
	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth      *service.AuthService
	Profile   *service.ProfileService
	Recipes   *service.RecipeService
	Generator *service.RecipeGenerator
	Drafts    *service.DraftService
}

// New creates a new server instance with all routes registered.
func New(cfg *config.Config, svcs Services, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		api.NewAuthHandler(svcs.Auth, logger).RegisterRoutes(v1)
		api.NewProfileHandler(svcs.Profile, svcs.Auth, logger).RegisterRoutes(v1)
		api.NewRecipeHandler(svcs.Generator, svcs.Recipes, svcs.Drafts, svcs.Auth, logger).RegisterRoutes(v1)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: logger,
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
