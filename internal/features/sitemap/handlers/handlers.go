package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"sitemap-service/internal/core"
	"sitemap-service/internal/metrics"
)

// Public paths of the sitemap documents
const (
	VideoSitemapPath = "/video-sitemap.xml"
	ImageSitemapPath = "/image-sitemap.xml"
	IndexPath        = "/sitemap-index.xml"
	RobotsPath       = "/robots.txt"
)

const xmlContentType = "application/xml"

// Feed binds a generator to its public path. Label names the feed in error
// messages and Name in metrics.
type Feed struct {
	Name      string
	Label     string
	Path      string
	Generator Generator
}

// Handlers serves the sitemap documents
type Handlers struct {
	logger  *core.Logger
	catalog CatalogLookup
	siteURL string
	video   *Feed
	image   *Feed
	index   IndexGenerator
}

// NewHandlers creates the sitemap handlers. video or image may be nil when that feed is disabled.
func NewHandlers(logger *core.Logger, catalog CatalogLookup, siteURL string, video, image *Feed, index IndexGenerator) *Handlers {
	return &Handlers{
		logger:  logger,
		catalog: catalog,
		siteURL: siteURL,
		video:   video,
		image:   image,
		index:   index,
	}
}

// VideoSitemap serves the video sitemap feed
func (h *Handlers) VideoSitemap(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, h.video)
}

// ImageSitemap serves the image sitemap feed
func (h *Handlers) ImageSitemap(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, h.image)
}

// serveFeed resolves the site URL, loads the catalog and renders the feed.
// Nothing is written until the whole document has been built.
func (h *Handlers) serveFeed(w http.ResponseWriter, r *http.Request, feed *Feed) {
	logger := h.logger.WithContext(r.Context())

	if feed == nil {
		core.HandleError(w, core.NewNotFoundError("Sitemap is not enabled.", nil))
		return
	}

	start := time.Now()

	if h.siteURL == "" {
		logger.Error("Site URL is not configured", "sitemap", feed.Label)
		metrics.ObserveRequest(feed.Name, metrics.ResultConfigError)
		core.HandleError(w, core.NewConfigurationError("Site URL is not defined.", nil))
		return
	}

	videos, err := h.catalog.FetchAll(r.Context())
	if err != nil {
		logger.Error("Failed to load video data", "sitemap", feed.Label, "error", err)
		metrics.ObserveRequest(feed.Name, metrics.ResultCatalogError)
		core.HandleError(w, core.NewDataSourceError(fmt.Sprintf("Failed to load video data for %s.", feed.Label), err))
		return
	}

	body, err := feed.Generator.Generate(h.siteURL, videos)
	if err != nil {
		logger.Error("Failed to render sitemap", "sitemap", feed.Label, "error", err)
		metrics.ObserveRequest(feed.Name, metrics.ResultRenderError)
		core.HandleError(w, core.NewInternalError("Failed to render sitemap.", err))
		return
	}

	logger.Debug("Rendered sitemap", "sitemap", feed.Label, "videos", len(videos))
	metrics.ObserveRequest(feed.Name, metrics.ResultOK)
	metrics.ObserveRender(feed.Name, time.Since(start))
	writeXML(w, body)
}

// SitemapIndex serves an index of the enabled feeds
func (h *Handlers) SitemapIndex(w http.ResponseWriter, r *http.Request) {
	if h.siteURL == "" {
		core.HandleError(w, core.NewConfigurationError("Site URL is not defined.", nil))
		return
	}

	body, err := h.index.Generate(h.siteURL, h.feedPaths())
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to render sitemap index", "error", err)
		core.HandleError(w, core.NewInternalError("Failed to render sitemap index.", err))
		return
	}

	writeXML(w, body)
}

// Robots serves a permissive robots.txt that advertises the sitemap index
func (h *Handlers) Robots(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	if h.siteURL != "" {
		fmt.Fprintf(&b, "\nSitemap: %s%s\n", strings.TrimSuffix(h.siteURL, "/"), IndexPath)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(b.String()))
}

func (h *Handlers) feedPaths() []string {
	var paths []string
	for _, feed := range []*Feed{h.video, h.image} {
		if feed != nil {
			paths = append(paths, feed.Path)
		}
	}
	return paths
}

func writeXML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", xmlContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
