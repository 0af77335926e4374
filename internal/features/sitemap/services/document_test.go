package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemap-service/internal/features/sitemap/models"
)

func TestLegalXMLChars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "My Title", "My Title"},
		{"whitespace kept", "a\tb\nc\rd", "a\tb\nc\rd"},
		{"vertical tab", "Intro\x0bPart", "Intro\uFFFDPart"},
		{"nul", "a\x00b", "a\uFFFDb"},
		{"invalid utf-8", "bad\xffbyte", "bad\uFFFDbyte"},
		{"noncharacter", "x\uFFFEy", "x\uFFFDy"},
		{"astral kept", "clip 🎬", "clip 🎬"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, legalXMLChars(tt.in))
		})
	}
}

func TestSitemaps_IllegalCharactersStayWellFormed(t *testing.T) {
	titles := []string{"Intro\x0bPart", "bad\xffbyte", "a\x00b"}

	for _, title := range titles {
		video := fullVideo()
		video.Title = title
		video.Description = "desc " + title
		video.Category = title
		video.Tags = models.TagList(title)
		video.Thumbnail = "/thumbs/" + title + ".jpg"

		gen, _ := newTestVideoGenerator(t)
		out, err := gen.Generate("https://example.com", []models.Video{video})
		require.NoError(t, err)

		doc := parseURLSet(t, out)
		require.Len(t, doc.URLs, 1)
		assert.Equal(t, legalXMLChars(title), doc.URLs[0].Video.Title)
		assert.Contains(t, doc.URLs[0].Video.Title, "\uFFFD")
		assert.Equal(t, []string{legalXMLChars(title)}, doc.URLs[0].Video.Tags)

		out, err = newTestImageGenerator().Generate("https://example.com", []models.Video{video})
		require.NoError(t, err)

		doc = parseURLSet(t, out)
		require.Len(t, doc.URLs, 1)
		assert.Equal(t, legalXMLChars(title), doc.URLs[0].Image.Title)
		assert.Contains(t, doc.URLs[0].Image.Loc, "\uFFFD")
	}
}
