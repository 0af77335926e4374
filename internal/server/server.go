package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sitemap-service/internal/core"
	"sitemap-service/internal/features/catalog"
	"sitemap-service/internal/features/sitemap"
	"sitemap-service/internal/server/handlers"
)

type Server struct {
	config   *core.Config
	logger   *core.Logger
	db       *core.Database
	registry *core.Registry
	catalog  *catalog.Feature
	server   *http.Server
}

// New wires the catalog and sitemap features and builds the router
func New(config *core.Config, logger *core.Logger) (*Server, error) {
	db, err := core.OpenDatabase(config.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	registry := core.NewRegistry(logger)

	catalogFeature := catalog.NewFeature(logger, db, catalog.NewConfig(config))
	sitemapFeature := sitemap.NewFeature(logger, catalogFeature.Service(), sitemap.NewConfig(config))

	for _, feature := range []core.Feature{catalogFeature, sitemapFeature} {
		if err := registry.Register(feature); err != nil {
			db.Close()
			return nil, err
		}
	}

	srv := &Server{
		config:   config,
		logger:   logger,
		db:       db,
		registry: registry,
		catalog:  catalogFeature,
	}
	srv.setupRoutes()

	return srv, nil
}

func (s *Server) setupRoutes() {
	portalHandler := handlers.NewPortalHandler(s.logger, s.registry, s.catalog.Service(), s.config.Site.URL)

	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Logger)

	mux.Get("/", portalHandler.StatusHandler)
	mux.Get("/health", portalHandler.HealthCheckHandler)
	mux.Handle("/metrics", promhttp.Handler())

	for _, route := range s.registry.GetAllRoutes() {
		mux.Method(route.Method, route.Path, route.Handler)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Init initializes all features; the catalog is migrated and seeded here
func (s *Server) Init(ctx context.Context) error {
	if err := s.registry.InitAll(ctx); err != nil {
		s.logger.Error("Failed to initialize features", "error", err)
		return err
	}
	return nil
}

// Start initializes the features and serves HTTP until the server is shut down
func (s *Server) Start(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	s.logger.Info("Starting server", "host", s.config.Server.Host, "port", s.config.Server.Port)

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.registry.ShutdownAll(ctx); err != nil {
		s.logger.Error("Failed to shutdown features", "error", err)
	}

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
