package sitemap

import (
	"context"
	"net/http"

	"sitemap-service/internal/core"
	"sitemap-service/internal/features/sitemap/handlers"
	"sitemap-service/internal/features/sitemap/services"
)

// Feature serves the video and image sitemap feeds
type Feature struct {
	*core.BaseFeature
	config   *Config
	handlers *handlers.Handlers
}

// NewFeature creates the sitemap feature on top of a catalog lookup
func NewFeature(logger *core.Logger, catalog handlers.CatalogLookup, config *Config, opts ...services.Option) *Feature {
	base := core.NewBaseFeature("sitemap", "Video and image sitemap feeds", config.Enabled(), logger, nil)
	featureLogger := base.Logger()

	var video, image *handlers.Feed
	if config.VideoEnabled {
		video = &handlers.Feed{
			Name:      services.VideoFeed,
			Label:     "sitemap",
			Path:      handlers.VideoSitemapPath,
			Generator: services.NewVideoSitemapGenerator(featureLogger, opts...),
		}
	}
	if config.ImageEnabled {
		image = &handlers.Feed{
			Name:      services.ImageFeed,
			Label:     "image sitemap",
			Path:      handlers.ImageSitemapPath,
			Generator: services.NewImageSitemapGenerator(opts...),
		}
	}

	return &Feature{
		BaseFeature: base,
		config:      config,
		handlers: handlers.NewHandlers(featureLogger, catalog, config.SiteURL, video, image,
			services.NewIndexGenerator(opts...)),
	}
}

// Init logs a warning when no site URL is configured; feeds then answer with 500
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if f.config.SiteURL == "" {
		f.Logger().Warn("Site URL is not configured; sitemap requests will fail")
	}
	return nil
}

// Routes returns the HTTP routes for the sitemap feature
func (f *Feature) Routes() []core.Route {
	var routes []core.Route
	if f.config.VideoEnabled {
		routes = append(routes, core.Route{Method: http.MethodGet, Path: handlers.VideoSitemapPath, Handler: f.handlers.VideoSitemap})
	}
	if f.config.ImageEnabled {
		routes = append(routes, core.Route{Method: http.MethodGet, Path: handlers.ImageSitemapPath, Handler: f.handlers.ImageSitemap})
	}

	return append(routes,
		core.Route{Method: http.MethodGet, Path: handlers.IndexPath, Handler: f.handlers.SitemapIndex},
		core.Route{Method: http.MethodGet, Path: handlers.RobotsPath, Handler: f.handlers.Robots},
	)
}
