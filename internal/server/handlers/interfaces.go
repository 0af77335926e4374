package handlers

import "context"

// CatalogCounter reports how many videos the catalog holds
type CatalogCounter interface {
	Count(ctx context.Context) (int, error)
}
