package handlers

import (
	"encoding/json"
	"net/http"

	"sitemap-service/internal/core"
	"sitemap-service/internal/server/views"
)

// PortalHandler serves the landing page and health check
type PortalHandler struct {
	logger   *core.Logger
	registry *core.Registry
	catalog  CatalogCounter
	siteURL  string
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(logger *core.Logger, registry *core.Registry, catalog CatalogCounter, siteURL string) *PortalHandler {
	return &PortalHandler{
		logger:   logger,
		registry: registry,
		catalog:  catalog,
		siteURL:  siteURL,
	}
}

// StatusHandler renders the landing page listing features, their documents and the catalog size
func (h *PortalHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	page := views.StatusPage{
		SiteURL:  h.siteURL,
		Features: h.registry.GetFeatureStatus(),
	}

	count, err := h.catalog.Count(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to count catalog videos", "error", err)
		page.CatalogError = "count failed"
	}
	page.CatalogSize = count

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Status(page).Render(r.Context(), w); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to render status page", "error", err)
	}
}

// HealthCheckHandler provides a health check endpoint
func (h *PortalHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "sitemap-service",
	})
}
