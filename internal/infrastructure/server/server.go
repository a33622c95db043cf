// Package server wires the gateway together: configuration, logging,
// metrics, the backend client, the session agent, the workspace store,
// and the route table.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/azuma520/prompt-scribe/gateway/internal/api/http"
	"github.com/azuma520/prompt-scribe/gateway/internal/api/middleware"
	"github.com/azuma520/prompt-scribe/gateway/internal/client"
	"github.com/azuma520/prompt-scribe/gateway/internal/domain/agent"
	"github.com/azuma520/prompt-scribe/gateway/internal/domain/workspace"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/config"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/logging"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/monitoring"
	"github.com/azuma520/prompt-scribe/gateway/internal/storage"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	logger  *logging.Logger
	config  *config.Config
}

// New creates a server instance.
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing Prompt-Scribe Gateway",
		zap.String("port", cfg.Server.Port),
		zap.String("backend_url", cfg.Backend.URL),
		zap.Bool("mock_data", cfg.Backend.UseMockData),
	)

	metrics := monitoring.NewMetrics()

	store, err := storage.New(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	backend := client.New(cfg.Backend, logger)
	agentSvc := agent.New(backend, store, logger)
	workspaceStore := workspace.New(store, logger)
	metrics.WorkspaceTags.Set(float64(workspaceStore.Count()))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(backend, agentSvc, workspaceStore, metrics, logger)
	registerRoutes(router, handlers, metrics)

	return &Server{
		router: router,
		logger: logger,
		config: cfg,
	}, nil
}

func registerRoutes(router *gin.Engine, handlers *apihttp.Handlers, metrics *monitoring.Metrics) {
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	// Thin proxy to the recommendation backend.
	inspire := router.Group("/api/inspire")
	{
		inspire.POST("/start", handlers.InspireStartProxy)
		inspire.POST("/continue", handlers.InspireContinueProxy)
		inspire.GET("/status/:sessionId", handlers.InspireStatusProxy)
	}

	// Server-hosted conversation session.
	agentGroup := router.Group("/api/agent")
	{
		agentGroup.POST("/start", handlers.AgentStart)
		agentGroup.POST("/continue", handlers.AgentContinue)
		agentGroup.POST("/select-direction", handlers.AgentSelectDirection)
		agentGroup.POST("/reset", handlers.AgentReset)
		agentGroup.GET("/state", handlers.AgentState)
	}

	// Workspace tag set.
	ws := router.Group("/api/workspace")
	{
		ws.GET("/tags", handlers.ListWorkspaceTags)
		ws.POST("/tags", handlers.AddWorkspaceTag)
		ws.POST("/tags/bulk", handlers.AddWorkspaceTags)
		ws.DELETE("/tags/:id", handlers.RemoveWorkspaceTag)
		ws.DELETE("/tags", handlers.ClearWorkspace)
		ws.POST("/reorder", handlers.ReorderWorkspaceTags)
		ws.GET("/prompt", handlers.WorkspacePrompt)
		ws.POST("/copy", handlers.CopyWorkspacePrompt)
	}

	// Tag catalog and LLM endpoints.
	tags := router.Group("/api/tags")
	{
		tags.GET("", handlers.GetTags)
		tags.POST("/recommend", handlers.RecommendTags)
		tags.POST("/validate", handlers.ValidatePrompt)
	}
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.logger.Info("Gateway listening", zap.String("addr", addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down gateway")
	defer s.logger.Sync()

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
