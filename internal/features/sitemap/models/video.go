package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Video is a catalog record as consumed by the sitemap generators. It is read-only to them.
type Video struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Thumbnail     string   `json:"thumbnail"`
	EmbedURL      string   `json:"embedUrl"`
	Duration      Duration `json:"duration"`
	DatePublished string   `json:"datePublished,omitempty"`
	DateModified  string   `json:"dateModified,omitempty"`
	Tags          Tags     `json:"tags"`
	Category      string   `json:"category,omitempty"`
}

// EligibleForVideoSitemap reports whether the record carries every field a video entry needs
func (v Video) EligibleForVideoSitemap() bool {
	return v.Title != "" && v.Description != "" && v.Thumbnail != "" && v.EmbedURL != ""
}

// EligibleForImageSitemap reports whether the record carries every field an image entry needs
func (v Video) EligibleForImageSitemap() bool {
	return v.Thumbnail != "" && v.Title != "" && v.ID != ""
}

// TagsKind tells how the tags of a record were supplied
type TagsKind int

const (
	TagsAbsent TagsKind = iota
	TagsList
	TagsCSV
)

// Tags holds either an ordered list of tags, a single comma separated string, or nothing.
// The zero value is absent.
type Tags struct {
	kind TagsKind
	list []string
	csv  string
}

// TagList builds list-shaped tags
func TagList(tags ...string) Tags {
	return Tags{kind: TagsList, list: append([]string(nil), tags...)}
}

// TagCSV builds tags from a comma separated string
func TagCSV(csv string) Tags {
	return Tags{kind: TagsCSV, csv: csv}
}

func (t Tags) Kind() TagsKind {
	return t.kind
}

// Values returns the trimmed, non-empty tags in their original order
func (t Tags) Values() []string {
	var source []string
	switch t.kind {
	case TagsList:
		source = t.list
	case TagsCSV:
		source = strings.Split(t.csv, ",")
	default:
		return nil
	}

	values := make([]string, 0, len(source))
	for _, tag := range source {
		if tag = strings.TrimSpace(tag); tag != "" {
			values = append(values, tag)
		}
	}
	return values
}

// UnmarshalJSON accepts an array of strings, a comma separated string, or null
func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = Tags{}
	case data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		*t = TagList(list...)
	case data[0] == '"':
		var csv string
		if err := json.Unmarshal(data, &csv); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		*t = TagCSV(csv)
	default:
		return fmt.Errorf("tags: expected array, string or null, got %s", data)
	}
	return nil
}

// MarshalJSON preserves the shape the tags were supplied in
func (t Tags) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case TagsList:
		if t.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.list)
	case TagsCSV:
		return json.Marshal(t.csv)
	default:
		return []byte("null"), nil
	}
}

// Duration is an optional playback length in seconds. Values that were supplied but are not
// numbers are kept verbatim so they can be stored and reported, but never read as seconds.
type Duration struct {
	raw     json.RawMessage
	seconds float64
	numeric bool
}

// Seconds builds a numeric duration
func Seconds(s float64) Duration {
	raw, _ := json.Marshal(s)
	return Duration{raw: raw, seconds: s, numeric: true}
}

// Present reports whether any duration value was supplied
func (d Duration) Present() bool {
	return len(d.raw) > 0
}

// Float64 returns the duration in seconds and whether it is numeric
func (d Duration) Float64() (float64, bool) {
	return d.seconds, d.numeric
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = Duration{}
		return nil
	}

	raw := append(json.RawMessage(nil), data...)
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		*d = Duration{raw: raw}
		return nil
	}
	*d = Duration{raw: raw, seconds: seconds, numeric: true}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	if !d.Present() {
		return []byte("null"), nil
	}
	return d.raw, nil
}
