package scraper

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// alphabet holds the 26 index keys the site paginates fighters under.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Discoverer enumerates every fighter profile URL referenced from the
// per-letter index pages.
type Discoverer struct {
	coordinator *Coordinator
	indexURL    string
	logger      *zap.Logger
}

// NewDiscoverer builds a Discoverer sharing the coordinator's admission gate
// and retry budget for index-page fetches.
func NewDiscoverer(cfg Config, coordinator *Coordinator, logger *zap.Logger) *Discoverer {
	return &Discoverer{
		coordinator: coordinator,
		indexURL:    cfg.IndexURLTemplate,
		logger:      logger,
	}
}

// Discover fetches all index pages concurrently and unions the profile links
// they reference into a deduplicated set. A letter whose fetch exhausts its
// retry budget contributes zero URLs; discovery degrades gracefully rather
// than aborting. Callers must not assume any ordering of the result.
func (d *Discoverer) Discover(ctx context.Context) []string {
	var (
		mu   sync.Mutex
		seen = map[string]struct{}{}
		wg   sync.WaitGroup
	)

	for _, letter := range alphabet {
		wg.Add(1)
		go func(letter rune) {
			defer wg.Done()
			url := fmt.Sprintf(d.indexURL, string(letter))
			page, err := d.coordinator.fetchWithRetry(ctx, url)
			if err != nil {
				d.logger.Warn("index page lost after retries",
					zap.String("letter", string(letter)), zap.Error(err))
				return
			}
			doc, err := parseDoc(page.Body)
			if err != nil {
				d.logger.Warn("index page unparseable",
					zap.String("letter", string(letter)), zap.Error(err))
				return
			}
			links := ExtractProfileLinks(doc)
			mu.Lock()
			for _, link := range links {
				seen[link] = struct{}{}
			}
			mu.Unlock()
		}(letter)
	}
	wg.Wait()

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	ProfilesDiscovered.Set(float64(len(urls)))
	return urls
}
