package services

import (
	"math"

	"sitemap-service/internal/core"
	"sitemap-service/internal/features/sitemap/models"
	"sitemap-service/internal/metrics"
)

// Feed names used as metric labels
const (
	VideoFeed = "video"
	ImageFeed = "image"
)

// DefaultDurationSeconds is reported when a record has no usable duration
const DefaultDurationSeconds = 126

const (
	videoChangeFreq = "weekly"
	videoPriority   = "0.8"
)

// VideoSitemapGenerator renders the video sitemap feed
type VideoSitemapGenerator struct {
	logger *core.Logger
	opts   options
}

// NewVideoSitemapGenerator creates a video sitemap generator
func NewVideoSitemapGenerator(logger *core.Logger, opts ...Option) *VideoSitemapGenerator {
	return &VideoSitemapGenerator{
		logger: logger,
		opts:   newOptions(opts),
	}
}

// Generate renders one <url> block per eligible video, in input order.
// Ineligible videos are skipped with a warning.
func (g *VideoSitemapGenerator) Generate(baseURL string, videos []models.Video) (string, error) {
	base := NormalizeBaseURL(baseURL)
	now := formatISO(g.opts.now())

	doc := urlSet{
		Xmlns:      SitemapNamespace,
		XmlnsVideo: VideoNamespace,
		URLs:       make([]urlEntry, 0, len(videos)),
	}

	for _, video := range videos {
		if !video.EligibleForVideoSitemap() {
			id := video.ID
			if id == "" {
				id = "N/A"
			}
			g.logger.Warn("Skipping video for sitemap due to missing required data", "id", id)
			metrics.IncSkipped(VideoFeed)
			continue
		}

		doc.URLs = append(doc.URLs, g.entry(base, now, video))
	}

	metrics.SetEntries(VideoFeed, len(doc.URLs))
	return render(doc)
}

func (g *VideoSitemapGenerator) entry(base, now string, video models.Video) urlEntry {
	published := video.DatePublished
	if published == "" {
		published = now
	}
	modified := video.DateModified
	if modified == "" {
		modified = published
	}

	tagValues := video.Tags.Values()
	tags := make([]text, 0, len(tagValues))
	for _, tag := range tagValues {
		tags = append(tags, escaped(tag))
	}

	return urlEntry{
		Loc:        escaped(pageURL(base, video.ID, video.Title, g.opts.slugger)),
		LastMod:    escaped(modified),
		ChangeFreq: videoChangeFreq,
		Priority:   videoPriority,
		Video: &videoEntry{
			ThumbnailLoc:    escaped(absoluteURL(base, video.Thumbnail)),
			Title:           escaped(video.Title),
			Description:     escaped(video.Description),
			ContentLoc:      escaped(absoluteURL(base, video.EmbedURL)),
			Duration:        NormalizeDuration(video.Duration),
			PublicationDate: escaped(published),
			Tags:            tags,
			Category:        escapedPtr(video.Category),
		},
	}
}

// NormalizeDuration rounds a positive numeric duration to whole seconds. Absent, non-numeric,
// zero, negative and non-finite values, and values that round to zero, become the default.
func NormalizeDuration(d models.Duration) int {
	seconds, ok := d.Float64()
	if !ok || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return DefaultDurationSeconds
	}

	rounded := math.Round(seconds)
	if rounded < 1 || rounded > math.MaxInt32 {
		return DefaultDurationSeconds
	}
	return int(rounded)
}
