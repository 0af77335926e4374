package sitemap

import (
	"sitemap-service/internal/core"
)

// Config represents sitemap feature configuration
type Config struct {
	SiteURL      string
	VideoEnabled bool
	ImageEnabled bool
}

// NewConfig creates sitemap config from core config
func NewConfig(coreConfig *core.Config) *Config {
	return &Config{
		SiteURL:      coreConfig.Site.URL,
		VideoEnabled: coreConfig.Features.VideoSitemap,
		ImageEnabled: coreConfig.Features.ImageSitemap,
	}
}

// Enabled reports whether at least one feed is served
func (c *Config) Enabled() bool {
	return c.VideoEnabled || c.ImageEnabled
}
