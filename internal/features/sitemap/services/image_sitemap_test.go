package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemap-service/internal/features/sitemap/models"
)

func newTestImageGenerator() *ImageSitemapGenerator {
	return NewImageSitemapGenerator(WithClock(FixedClock(fixedNow)))
}

func TestImageSitemap_Entry(t *testing.T) {
	out, err := newTestImageGenerator().Generate("https://example.com/", []models.Video{fullVideo()})
	require.NoError(t, err)

	assert.Contains(t, out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, out, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	assert.NotContains(t, out, "xmlns:video")
	assert.NotContains(t, out, "<changefreq>")
	assert.NotContains(t, out, "<priority>")

	doc := parseURLSet(t, out)
	require.Len(t, doc.URLs, 1)
	u := doc.URLs[0]
	assert.Equal(t, "https://example.com/video/123/my-title", u.Loc)
	assert.Equal(t, "2024-01-02T03:04:05.000Z", u.LastMod)
	assert.Equal(t, "https://example.com/thumbs/123.jpg", u.Image.Loc)
	assert.Equal(t, "A description", u.Image.Caption)
	assert.Equal(t, "My Title", u.Image.Title)
}

func TestImageSitemap_LastModDefaultsToRequestTime(t *testing.T) {
	video := fullVideo()
	video.DatePublished = ""

	out, err := newTestImageGenerator().Generate("https://example.com", []models.Video{video})
	require.NoError(t, err)

	doc := parseURLSet(t, out)
	require.Len(t, doc.URLs, 1)
	assert.Equal(t, "2024-03-05T10:30:00.000Z", doc.URLs[0].LastMod)
}

func TestImageSitemap_LastModIgnoresDateModified(t *testing.T) {
	video := fullVideo()
	video.DatePublished = ""
	video.DateModified = "2023-12-31T00:00:00.000Z"

	out, err := newTestImageGenerator().Generate("https://example.com", []models.Video{video})
	require.NoError(t, err)

	doc := parseURLSet(t, out)
	require.Len(t, doc.URLs, 1)
	assert.Equal(t, "2024-03-05T10:30:00.000Z", doc.URLs[0].LastMod)
}

func TestImageSitemap_CaptionFallsBackToTitle(t *testing.T) {
	video := fullVideo()
	video.Description = ""

	out, err := newTestImageGenerator().Generate("https://example.com", []models.Video{video})
	require.NoError(t, err)

	doc := parseURLSet(t, out)
	require.Len(t, doc.URLs, 1)
	assert.Equal(t, "My Title", doc.URLs[0].Image.Caption)
}

func TestImageSitemap_MissingEmbedURLStillEmitted(t *testing.T) {
	video := fullVideo()
	video.EmbedURL = ""

	out, err := newTestImageGenerator().Generate("https://example.com", []models.Video{video})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "<url>"))
}

func TestImageSitemap_BlockCountMatchesEligibleRecords(t *testing.T) {
	noID := fullVideo()
	noID.ID = ""
	noThumbnail := fullVideo()
	noThumbnail.ID, noThumbnail.Thumbnail = "2", ""
	noTitle := fullVideo()
	noTitle.ID, noTitle.Title = "3", ""
	other := fullVideo()
	other.ID, other.Title = "4", "Other"

	out, err := newTestImageGenerator().Generate("https://example.com", []models.Video{noID, fullVideo(), noThumbnail, noTitle, other})
	require.NoError(t, err)

	doc := parseURLSet(t, out)
	require.Len(t, doc.URLs, 2)
	assert.Equal(t, "https://example.com/video/123/my-title", doc.URLs[0].Loc)
	assert.Equal(t, "https://example.com/video/4/other", doc.URLs[1].Loc)
}

func TestImageSitemap_EscapesCaptionAndTitle(t *testing.T) {
	video := fullVideo()
	video.Title = `<Test & "Quote">`
	video.Description = ""

	out, err := newTestImageGenerator().Generate("https://example.com", []models.Video{video})
	require.NoError(t, err)

	assert.Contains(t, out, "<image:caption>&lt;Test &amp; &quot;Quote&quot;&gt;</image:caption>")
	assert.Contains(t, out, "<image:title>&lt;Test &amp; &quot;Quote&quot;&gt;</image:title>")
}

func TestImageSitemap_Idempotent(t *testing.T) {
	gen := newTestImageGenerator()
	videos := []models.Video{fullVideo(), {ID: "9", Title: "Nine", Thumbnail: "/9.jpg"}}

	first, err := gen.Generate("https://example.com", videos)
	require.NoError(t, err)
	second, err := gen.Generate("https://example.com", videos)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIndexGenerator(t *testing.T) {
	out, err := NewIndexGenerator(WithClock(FixedClock(fixedNow))).Generate("https://example.com/", []string{"/video-sitemap.xml", "/image-sitemap.xml"})
	require.NoError(t, err)

	assert.Contains(t, out, `<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://example.com/video-sitemap.xml</loc>")
	assert.Contains(t, out, "<loc>https://example.com/image-sitemap.xml</loc>")
	assert.Equal(t, 2, strings.Count(out, "<lastmod>2024-03-05T10:30:00.000Z</lastmod>"))
}

func TestWithSlugger(t *testing.T) {
	gen := NewImageSitemapGenerator(
		WithClock(FixedClock(fixedNow)),
		WithSlugger(SlugFunc(func(string) string { return "fixed" })),
	)

	out, err := gen.Generate("https://example.com", []models.Video{fullVideo()})
	require.NoError(t, err)
	assert.Contains(t, out, "<loc>https://example.com/video/123/fixed</loc>")
}
