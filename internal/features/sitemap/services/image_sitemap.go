package services

import (
	"sitemap-service/internal/features/sitemap/models"
	"sitemap-service/internal/metrics"
)

// ImageSitemapGenerator renders the image sitemap feed from video thumbnails
type ImageSitemapGenerator struct {
	opts options
}

// NewImageSitemapGenerator creates an image sitemap generator
func NewImageSitemapGenerator(opts ...Option) *ImageSitemapGenerator {
	return &ImageSitemapGenerator{opts: newOptions(opts)}
}

// Generate renders one <url> block per eligible video, in input order.
// Ineligible videos are skipped without logging.
func (g *ImageSitemapGenerator) Generate(baseURL string, videos []models.Video) (string, error) {
	base := NormalizeBaseURL(baseURL)
	lastMod := formatISO(g.opts.now())

	doc := urlSet{
		Xmlns:      SitemapNamespace,
		XmlnsImage: ImageNamespace,
		URLs:       make([]urlEntry, 0, len(videos)),
	}

	for _, video := range videos {
		if !video.EligibleForImageSitemap() {
			metrics.IncSkipped(ImageFeed)
			continue
		}

		modified := video.DatePublished
		if modified == "" {
			modified = lastMod
		}
		caption := video.Description
		if caption == "" {
			caption = video.Title
		}

		doc.URLs = append(doc.URLs, urlEntry{
			Loc:     escaped(pageURL(base, video.ID, video.Title, g.opts.slugger)),
			LastMod: escaped(modified),
			Image: &imageEntry{
				Loc:     escaped(absoluteURL(base, video.Thumbnail)),
				Caption: escaped(caption),
				Title:   escaped(video.Title),
			},
		})
	}

	metrics.SetEntries(ImageFeed, len(doc.URLs))
	return render(doc)
}
