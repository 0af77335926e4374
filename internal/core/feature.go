package core

import (
	"context"
	"net/http"
)

// Feature is a unit of the service that owns its routes and lifecycle.
// The catalog and each sitemap feed are features.
type Feature interface {
	Name() string
	Description() string
	Enabled() bool

	// Init prepares the feature before the HTTP server starts accepting requests
	Init(ctx context.Context) error

	// Routes returns the HTTP routes for this feature
	Routes() []Route

	Shutdown(ctx context.Context) error
}

// Route represents an HTTP route for a feature
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// BaseFeature provides common functionality for all features
type BaseFeature struct {
	name        string
	description string
	enabled     bool
	logger      *Logger
	db          *Database
}

// NewBaseFeature creates a new base feature. db may be nil for features without storage.
func NewBaseFeature(name, description string, enabled bool, logger *Logger, db *Database) *BaseFeature {
	return &BaseFeature{
		name:        name,
		description: description,
		enabled:     enabled,
		logger:      logger,
		db:          db,
	}
}

func (f *BaseFeature) Name() string {
	return f.name
}

func (f *BaseFeature) Description() string {
	return f.description
}

func (f *BaseFeature) Enabled() bool {
	return f.enabled
}

// Logger returns the feature-specific logger
func (f *BaseFeature) Logger() *Logger {
	return f.logger.ForFeature(f.name)
}

// DB returns the database connection
func (f *BaseFeature) DB() *Database {
	return f.db
}

// Default implementations for optional methods
func (f *BaseFeature) Init(ctx context.Context) error {
	f.Logger().Info("Initializing feature")
	return nil
}

func (f *BaseFeature) Routes() []Route {
	return nil
}

func (f *BaseFeature) Shutdown(ctx context.Context) error {
	f.Logger().Info("Shutting down feature")
	return nil
}
