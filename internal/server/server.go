package server

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/autoflow/fileops/internal/config"
	"github.com/autoflow/fileops/internal/http"
	"github.com/autoflow/fileops/internal/logging"
	"github.com/autoflow/fileops/internal/providers/files"
	"github.com/autoflow/fileops/internal/registry"
)

// Version is the reported service version.
const Version = "0.1.0"

// Server wraps the HTTP server and dependencies
type Server struct {
	cfg      *config.Config
	log      *logging.Logger
	registry *registry.Registry
	srv      *nethttp.Server
}

// New creates a server instance from configuration.
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.NewDefault()
	}

	reg := registry.NewRegistry()
	if err := registerProviders(reg, cfg, log); err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(http.RequestID())
	router.Use(http.RateLimit(cfg.Server.RateRPS, cfg.Server.RateBurst))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", http.RequestIDHeader},
		ExposeHeaders: []string{http.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	handlers := http.NewHandlers(reg, log, Version)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	return &Server{
		cfg:      cfg,
		log:      log,
		registry: reg,
		srv: &nethttp.Server{
			Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
		},
	}, nil
}

// Run starts the server and blocks until it exits.
func (s *Server) Run() error {
	s.log.Info("starting fileops service", zap.String("addr", s.srv.Addr))
	err := s.srv.ListenAndServe()
	if err == nethttp.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down")
	return s.srv.Shutdown(ctx)
}

func registerProviders(reg *registry.Registry, cfg *config.Config, log *logging.Logger) error {
	mode := files.ParseCaseMode(cfg.Files.CaseMode)

	filesProvider := files.NewProvider(log, cfg.Files.BaseDir, mode)
	if err := reg.Register(filesProvider); err != nil {
		return err
	}

	stats := reg.Stats()
	log.Info("registered service providers",
		zap.Any("services", stats["total_services"]),
		zap.Any("tools", stats["total_tools"]))
	return nil
}
