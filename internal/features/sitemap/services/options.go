package services

import "time"

// Option configures a sitemap generator
type Option func(*options)

type options struct {
	now     Clock
	slugger Slugger
}

func newOptions(opts []Option) options {
	o := options{
		now:     time.Now,
		slugger: DefaultSlugger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the wall clock used for defaulted dates
func WithClock(now Clock) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSlugger replaces the title slugger used for page URLs
func WithSlugger(s Slugger) Option {
	return func(o *options) {
		if s != nil {
			o.slugger = s
		}
	}
}

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func pageURL(base, id, title string, slugger Slugger) string {
	return base + "/video/" + id + "/" + slugger.Slugify(title)
}
