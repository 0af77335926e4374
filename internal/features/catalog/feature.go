package catalog

import (
	"context"
	"fmt"
	"time"

	"sitemap-service/internal/core"
	"sitemap-service/internal/features/catalog/migrations"
	"sitemap-service/internal/features/catalog/services"
)

// Config represents catalog feature configuration
type Config struct {
	SeedPath        string
	RefreshInterval time.Duration
}

// NewConfig creates catalog config from core config
func NewConfig(coreConfig *core.Config) *Config {
	return &Config{
		SeedPath:        coreConfig.Catalog.SeedPath,
		RefreshInterval: coreConfig.Catalog.RefreshInterval,
	}
}

// Feature owns the sqlite video catalog the sitemaps are built from
type Feature struct {
	*core.BaseFeature
	config       *Config
	migrationMgr *migrations.Manager
	service      *services.CatalogService
	refresher    *services.Refresher
}

// NewFeature creates a new catalog feature
func NewFeature(logger *core.Logger, db *core.Database, config *Config) *Feature {
	base := core.NewBaseFeature("catalog", "Video catalog", true, logger, db)
	service := services.NewCatalogService(db, base.Logger())

	feature := &Feature{
		BaseFeature:  base,
		config:       config,
		migrationMgr: migrations.NewManager(db, base.Logger()),
		service:      service,
	}
	if config.SeedPath != "" && config.RefreshInterval > 0 {
		feature.refresher = services.NewRefresher(service, base.Logger(), config.SeedPath, config.RefreshInterval)
	}
	return feature
}

// Init runs the catalog migrations and imports the seed file when one is configured
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.migrationMgr.Migrate(ctx); err != nil {
		return err
	}

	if f.config.SeedPath != "" {
		count, err := f.service.ImportFile(ctx, f.config.SeedPath)
		if err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		f.Logger().Info("Seeded video catalog", "path", f.config.SeedPath, "videos", count)
	}

	if f.refresher != nil {
		// Detached from ctx: the init context may end before the server does
		f.refresher.Start(context.Background())
	}

	return nil
}

// Shutdown stops the refresher, if any
func (f *Feature) Shutdown(ctx context.Context) error {
	if f.refresher != nil {
		f.refresher.Stop()
	}
	return f.BaseFeature.Shutdown(ctx)
}

// Service returns the catalog service
func (f *Feature) Service() *services.CatalogService {
	return f.service
}
