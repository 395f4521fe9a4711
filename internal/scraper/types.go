// Package scraper implements the concurrent discovery-and-fetch pipeline
// against the fighter statistics site: index-page URL discovery, the
// bounded-concurrency fetch coordinator, and raw field extraction.
package scraper

import (
	"context"
	"time"
)

// Page is the payload returned by a Fetcher for a single URL.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Fetcher retrieves one URL. Implementations must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// Archiver optionally persists raw profile pages for later reprocessing.
type Archiver interface {
	PutPage(ctx context.Context, name string, data []byte) (string, error)
}

// Profile accumulates the raw scraped fields for one fighter. Each Profile is
// owned exclusively by the single task fetching it within a phase, so no
// locking is needed beyond the phase barrier.
type Profile struct {
	// URL is the stable profile identifier and the storage upsert key.
	URL string
	// Fields maps raw labels to trimmed values. Keys are not guaranteed
	// complete until both fetch phases have settled.
	Fields map[string]string
}

// NewProfiles wraps discovered profile URLs into empty Profile records.
func NewProfiles(urls []string) []*Profile {
	profiles := make([]*Profile, 0, len(urls))
	for _, u := range urls {
		profiles = append(profiles, &Profile{
			URL:    u,
			Fields: map[string]string{},
		})
	}
	return profiles
}
