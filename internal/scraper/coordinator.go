package scraper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Coordinator executes large batches of independent per-profile fetches
// under a global concurrency ceiling, with per-fetch retry and fixed backoff.
// One profile's permanent failure never blocks or corrupts another's result.
type Coordinator struct {
	fetcher  Fetcher
	clock    Clock
	archiver Archiver // may be nil
	gate     *semaphore.Weighted
	retries  int
	backoff  time.Duration
	logger   *zap.Logger
}

// NewCoordinator builds a Coordinator. The admission gate is sized by
// cfg.ConcurrentRequests and shared by every task in a phase. The archiver
// is optional; when set, stats-phase page bodies are archived best effort.
func NewCoordinator(cfg Config, fetcher Fetcher, clock Clock, archiver Archiver, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		fetcher:  fetcher,
		clock:    clock,
		archiver: archiver,
		gate:     semaphore.NewWeighted(int64(cfg.ConcurrentRequests)),
		retries:  cfg.Retries,
		backoff:  cfg.RetryBackoff,
		logger:   logger,
	}
}

// FetchNames runs phase one: fan out one name fetch per profile and block
// until every task has settled. A profile whose fetch exhausts its retry
// budget gets the sentinel name "Unknown".
func (c *Coordinator) FetchNames(ctx context.Context, profiles []*Profile) {
	var wg sync.WaitGroup
	for _, p := range profiles {
		wg.Add(1)
		go func(p *Profile) {
			defer wg.Done()
			c.fetchName(ctx, p)
		}(p)
	}
	wg.Wait()
}

// FetchStats runs phase two: fan out one stats fetch per profile and block
// until every task has settled. Run it only after FetchNames returns so peak
// concurrency stays bounded by a single gate. A profile whose fetch fails
// terminally keeps whatever fields it already has.
func (c *Coordinator) FetchStats(ctx context.Context, profiles []*Profile) {
	var wg sync.WaitGroup
	for _, p := range profiles {
		wg.Add(1)
		go func(p *Profile) {
			defer wg.Done()
			c.fetchStats(ctx, p)
		}(p)
	}
	wg.Wait()
}

func (c *Coordinator) fetchName(ctx context.Context, p *Profile) {
	page, err := c.fetchWithRetry(ctx, p.URL)
	if err != nil {
		c.logger.Warn("name fetch failed, recording sentinel",
			zap.String("url", p.URL), zap.Error(err))
		p.Fields["name"] = "Unknown"
		return
	}
	doc, err := parseDoc(page.Body)
	if err != nil {
		c.logger.Warn("name page unparseable, recording sentinel",
			zap.String("url", p.URL), zap.Error(err))
		p.Fields["name"] = "Unknown"
		return
	}
	p.Fields["name"] = ExtractName(doc)
}

func (c *Coordinator) fetchStats(ctx context.Context, p *Profile) {
	page, err := c.fetchWithRetry(ctx, p.URL)
	if err != nil {
		c.logger.Warn("stats fetch failed, keeping prior fields",
			zap.String("url", p.URL), zap.Error(err))
		StatsFailuresTotal.Inc()
		return
	}
	doc, err := parseDoc(page.Body)
	if err != nil {
		c.logger.Warn("stats page unparseable, keeping prior fields",
			zap.String("url", p.URL), zap.Error(err))
		StatsFailuresTotal.Inc()
		return
	}
	for label, value := range ExtractStats(doc, c.clock.Now()) {
		p.Fields[label] = value
	}
	c.archivePage(ctx, p.URL, page.Body)
	ProfilesScrapedTotal.Inc()
}

// fetchWithRetry performs one admission-gated fetch with up to c.retries
// attempts and a fixed backoff sleep between them. The gate is held across
// attempts so a struggling profile cannot multiply in-flight requests.
func (c *Coordinator) fetchWithRetry(ctx context.Context, url string) (Page, error) {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return Page{}, fmt.Errorf("acquire fetch slot: %w", err)
	}
	defer c.gate.Release(1)

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		RequestsTotal.Inc()
		page, err := c.fetcher.Fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err
		RequestErrorsTotal.Inc()
		if attempt == c.retries-1 {
			break
		}
		RetriesTotal.Inc()
		select {
		case <-time.After(c.backoff):
		case <-ctx.Done():
			return Page{}, ctx.Err()
		}
	}
	return Page{}, fmt.Errorf("fetch %s after %d attempts: %w", url, c.retries, lastErr)
}

func (c *Coordinator) archivePage(ctx context.Context, url string, body []byte) {
	if c.archiver == nil {
		return
	}
	name := pageObjectName(url, c.clock.Now())
	if _, err := c.archiver.PutPage(ctx, name, body); err != nil {
		c.logger.Warn("page archive failed", zap.String("url", url), zap.Error(err))
	}
}

// pageObjectName derives a stable archive object name from a profile URL.
func pageObjectName(url string, fetchedAt time.Time) string {
	sum := sha1.Sum([]byte(url))
	return path.Join(
		"profiles",
		fetchedAt.Format("2006-01-02"),
		fmt.Sprintf("%s.html", hex.EncodeToString(sum[:])),
	)
}
