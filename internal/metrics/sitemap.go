package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Results recorded for a sitemap request
const (
	ResultOK           = "ok"
	ResultConfigError  = "config_error"
	ResultCatalogError = "catalog_error"
	ResultRenderError  = "render_error"
)

var (
	// SitemapRequestsTotal counts sitemap requests by feed and outcome.
	SitemapRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitemap_requests_total",
		Help: "Total number of sitemap requests by feed and result",
	}, []string{"feed", "result"})

	// SitemapRenderDuration tracks the time from catalog lookup to a rendered document.
	SitemapRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sitemap_render_duration_seconds",
		Help:    "Time taken to load the catalog and render a sitemap",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"feed"})

	// SitemapEntries reports the number of <url> blocks in the last rendered document.
	SitemapEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sitemap_entries",
		Help: "Number of entries in the last rendered sitemap",
	}, []string{"feed"})

	// SkippedVideosTotal counts catalog records left out of a feed for missing data.
	SkippedVideosTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitemap_skipped_videos_total",
		Help: "Total number of videos skipped for missing required data",
	}, []string{"feed"})
)

// ObserveRequest records the outcome of a sitemap request.
func ObserveRequest(feed, result string) {
	SitemapRequestsTotal.WithLabelValues(feed, result).Inc()
}

// ObserveRender records the time taken to serve a rendered feed.
func ObserveRender(feed string, duration time.Duration) {
	SitemapRenderDuration.WithLabelValues(feed).Observe(duration.Seconds())
}

// SetEntries records the size of the last rendered feed.
func SetEntries(feed string, entries int) {
	SitemapEntries.WithLabelValues(feed).Set(float64(entries))
}

// IncSkipped records a skipped catalog record.
func IncSkipped(feed string) {
	SkippedVideosTotal.WithLabelValues(feed).Inc()
}
