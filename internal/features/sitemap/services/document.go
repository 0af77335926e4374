package services

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Namespace URIs declared on the generated documents
const (
	SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	VideoNamespace   = "http://www.google.com/schemas/sitemap-video/1.1"
	ImageNamespace   = "http://www.google.com/schemas/sitemap-image/1.1"
)

// isoLayout matches JavaScript's Date.toISOString output
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Clock supplies the request time used for defaulted dates
type Clock func() time.Time

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// text is element content that has been escaped with EscapeXML. encoding/xml would emit
// numeric references for quotes, so escaped content is written as inner XML instead.
type text struct {
	Inner string `xml:",innerxml"`
}

func escaped(s string) text {
	return text{Inner: EscapeXML(legalXMLChars(s))}
}

// legalXMLChars replaces invalid UTF-8 and runes outside the XML 1.0 Char production
// with U+FFFD, as xml.EscapeText does.
func legalXMLChars(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if strings.IndexFunc(s, isIllegalXMLChar) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isIllegalXMLChar(r) {
			return '\uFFFD'
		}
		return r
	}, s)
}

func isIllegalXMLChar(r rune) bool {
	return !(r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF)
}

func escapedPtr(s string) *text {
	if s == "" {
		return nil
	}
	t := escaped(s)
	return &t
}

type urlSet struct {
	XMLName    xml.Name   `xml:"urlset"`
	Xmlns      string     `xml:"xmlns,attr"`
	XmlnsVideo string     `xml:"xmlns:video,attr,omitempty"`
	XmlnsImage string     `xml:"xmlns:image,attr,omitempty"`
	URLs       []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        text        `xml:"loc"`
	LastMod    text        `xml:"lastmod"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Video      *videoEntry `xml:"video:video,omitempty"`
	Image      *imageEntry `xml:"image:image,omitempty"`
}

type videoEntry struct {
	ThumbnailLoc    text   `xml:"video:thumbnail_loc"`
	Title           text   `xml:"video:title"`
	Description     text   `xml:"video:description"`
	ContentLoc      text   `xml:"video:content_loc"`
	Duration        int    `xml:"video:duration"`
	PublicationDate text   `xml:"video:publication_date"`
	Tags            []text `xml:"video:tag"`
	Category        *text  `xml:"video:category,omitempty"`
}

type imageEntry struct {
	Loc     text `xml:"image:loc"`
	Caption text `xml:"image:caption"`
	Title   text `xml:"image:title"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

type sitemapRef struct {
	Loc     text `xml:"loc"`
	LastMod text `xml:"lastmod"`
}

// render marshals doc as an indented XML document with declaration
func render(doc any) (string, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode sitemap: %w", err)
	}

	var b strings.Builder
	b.Grow(len(xml.Header) + len(body) + 1)
	b.WriteString(xml.Header)
	b.Write(body)
	b.WriteByte('\n')
	return b.String(), nil
}

// NormalizeBaseURL strips exactly one trailing slash
func NormalizeBaseURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/")
}

// absoluteURL leaves values starting with "http" untouched and prefixes everything else with base
func absoluteURL(base, value string) string {
	if strings.HasPrefix(value, "http") {
		return value
	}
	return base + value
}
