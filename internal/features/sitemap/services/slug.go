package services

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugger converts a title into a URL-safe path segment
type Slugger interface {
	Slugify(title string) string
}

// SlugFunc adapts a plain function to the Slugger interface
type SlugFunc func(title string) string

func (f SlugFunc) Slugify(title string) string {
	return f(title)
}

// DefaultSlugger is used when a generator is built without an explicit slugger
var DefaultSlugger Slugger = SlugFunc(Slugify)

const emptySlug = "video"

// Slugify lowercases title, strips diacritics and joins runs of letters and digits with
// single hyphens. Letters outside ASCII are kept and percent-encoded.
func Slugify(title string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		stripped = title
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return emptySlug
	}
	return url.PathEscape(b.String())
}
