package handlers

import (
	"context"

	"sitemap-service/internal/features/sitemap/models"
)

// CatalogLookup supplies the full list of catalog videos. A failure must be returned as a
// single error; the handlers do not retry.
type CatalogLookup interface {
	FetchAll(ctx context.Context) ([]models.Video, error)
}

// Generator renders a sitemap feed for a base URL and a list of videos
type Generator interface {
	Generate(baseURL string, videos []models.Video) (string, error)
}

// IndexGenerator renders a sitemap index for a base URL and a list of feed paths
type IndexGenerator interface {
	Generate(baseURL string, feedPaths []string) (string, error)
}
