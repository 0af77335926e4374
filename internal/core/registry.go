package core

import (
	"context"
	"fmt"
	"sync"
)

// Registry manages all features of the sitemap service.
// Features are initialised in registration order and shut down in reverse.
type Registry struct {
	mutex    sync.RWMutex
	order    []string
	features map[string]Feature
	logger   *Logger
}

// NewRegistry creates a new feature registry
func NewRegistry(logger *Logger) *Registry {
	return &Registry{
		features: make(map[string]Feature),
		logger:   logger,
	}
}

// Register adds a feature to the registry
func (r *Registry) Register(feature Feature) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := feature.Name()
	if _, exists := r.features[name]; exists {
		return fmt.Errorf("feature %s already registered", name)
	}

	r.features[name] = feature
	r.order = append(r.order, name)
	r.logger.Info("Registered feature", "name", name, "enabled", feature.Enabled())
	return nil
}

// Get retrieves a feature by name
func (r *Registry) Get(name string) (Feature, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	feature, exists := r.features[name]
	return feature, exists
}

// List returns all registered features in registration order
func (r *Registry) List() []Feature {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	features := make([]Feature, 0, len(r.order))
	for _, name := range r.order {
		features = append(features, r.features[name])
	}
	return features
}

// ListEnabled returns only enabled features
func (r *Registry) ListEnabled() []Feature {
	var enabled []Feature
	for _, feature := range r.List() {
		if feature.Enabled() {
			enabled = append(enabled, feature)
		}
	}
	return enabled
}

// InitAll initializes all enabled features
func (r *Registry) InitAll(ctx context.Context) error {
	features := r.ListEnabled()
	r.logger.Info("Initializing features", "count", len(features))

	for _, feature := range features {
		if err := feature.Init(ctx); err != nil {
			r.logger.LogFeatureError(feature.Name(), "Failed to initialize feature", err)
			return NewFeatureError(feature.Name(), "failed to initialize", err)
		}
	}

	return nil
}

// ShutdownAll gracefully shuts down all enabled features, last registered first
func (r *Registry) ShutdownAll(ctx context.Context) error {
	features := r.ListEnabled()
	r.logger.Info("Shutting down features", "count", len(features))

	for i := len(features) - 1; i >= 0; i-- {
		feature := features[i]
		if err := feature.Shutdown(ctx); err != nil {
			// Continue shutting down other features
			r.logger.Error("Failed to shutdown feature", "name", feature.Name(), "error", err)
		}
	}

	return nil
}

// GetAllRoutes returns all routes from enabled features
func (r *Registry) GetAllRoutes() []Route {
	var allRoutes []Route
	for _, feature := range r.ListEnabled() {
		allRoutes = append(allRoutes, feature.Routes()...)
	}
	return allRoutes
}

// GetFeatureStatus returns the status of all features in registration order
func (r *Registry) GetFeatureStatus() []FeatureStatus {
	features := r.List()
	status := make([]FeatureStatus, 0, len(features))

	for _, feature := range features {
		fs := FeatureStatus{
			Name:        feature.Name(),
			Description: feature.Description(),
			Enabled:     feature.Enabled(),
		}
		if feature.Enabled() {
			for _, route := range feature.Routes() {
				fs.Paths = append(fs.Paths, route.Path)
			}
		}
		status = append(status, fs)
	}

	return status
}

// FeatureStatus represents the status of a feature
type FeatureStatus struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Enabled     bool     `json:"enabled"`
	Paths       []string `json:"paths,omitempty"`
}
