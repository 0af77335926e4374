package services

// IndexGenerator renders a sitemap index pointing at the enabled feeds
type IndexGenerator struct {
	opts options
}

// NewIndexGenerator creates a sitemap index generator
func NewIndexGenerator(opts ...Option) *IndexGenerator {
	return &IndexGenerator{opts: newOptions(opts)}
}

// Generate lists each feed path under baseURL, stamped with the current time
func (g *IndexGenerator) Generate(baseURL string, feedPaths []string) (string, error) {
	base := NormalizeBaseURL(baseURL)
	lastMod := formatISO(g.opts.now())

	doc := sitemapIndex{
		Xmlns:    SitemapNamespace,
		Sitemaps: make([]sitemapRef, 0, len(feedPaths)),
	}
	for _, path := range feedPaths {
		doc.Sitemaps = append(doc.Sitemaps, sitemapRef{
			Loc:     escaped(base + path),
			LastMod: escaped(lastMod),
		})
	}

	return render(doc)
}
