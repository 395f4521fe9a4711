package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

// fakeFetcher scripts per-URL failures before success and records attempt
// counts plus the peak number of concurrently in-flight fetches.
type fakeFetcher struct {
	mu        sync.Mutex
	attempts  map[string]int
	failures  map[string]int // attempts that fail before succeeding
	pages     map[string][]byte
	inFlight  int64
	maxInFlit int64
	delay     time.Duration
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		attempts: map[string]int{},
		failures: map[string]int{},
		pages:    map[string][]byte{},
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (Page, error) {
	cur := atomic.AddInt64(&f.inFlight, 1)
	for {
		prev := atomic.LoadInt64(&f.maxInFlit)
		if cur <= prev || atomic.CompareAndSwapInt64(&f.maxInFlit, prev, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	defer atomic.AddInt64(&f.inFlight, -1)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[rawURL]++
	if f.attempts[rawURL] <= f.failures[rawURL] {
		return Page{}, errors.New("transient error")
	}
	body, ok := f.pages[rawURL]
	if !ok {
		return Page{}, errors.New("no such page")
	}
	return Page{URL: rawURL, StatusCode: 200, Body: body}, nil
}

func (f *fakeFetcher) attemptCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts[url]
}

func testConfig() Config {
	return Config{
		IndexURLTemplate:   "http://stats.test/fighters?char=%s&page=all",
		UserAgent:          "test-agent",
		ConcurrentRequests: 10,
		Retries:            3,
		RetryBackoff:       time.Millisecond,
		RequestTimeout:     time.Second,
	}
}

func namePage(name string) []byte {
	return []byte(fmt.Sprintf(
		`<html><body><span class="b-content__title-highlight">%s</span></body></html>`, name))
}

func TestCoordinatorFetchNames(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.pages["http://stats.test/fighter-details/a"] = namePage("Fighter A")
	fetcher.pages["http://stats.test/fighter-details/b"] = namePage("Fighter B")

	coord := NewCoordinator(testConfig(), fetcher, fakeClock{now: extractNow}, nil, zap.NewNop())
	profiles := NewProfiles([]string{
		"http://stats.test/fighter-details/a",
		"http://stats.test/fighter-details/b",
	})

	coord.FetchNames(context.Background(), profiles)

	require.Equal(t, "Fighter A", profiles[0].Fields["name"])
	require.Equal(t, "Fighter B", profiles[1].Fields["name"])
}

func TestCoordinatorRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	const url = "http://stats.test/fighter-details/flaky"
	fetcher := newFakeFetcher()
	fetcher.failures[url] = 2 // third attempt succeeds
	fetcher.pages[url] = namePage("Flaky Fighter")

	coord := NewCoordinator(testConfig(), fetcher, fakeClock{now: extractNow}, nil, zap.NewNop())
	profiles := NewProfiles([]string{url})

	coord.FetchNames(context.Background(), profiles)

	require.Equal(t, 3, fetcher.attemptCount(url))
	require.Equal(t, "Flaky Fighter", profiles[0].Fields["name"])
}

func TestCoordinatorNameSentinelAfterExhaustedRetries(t *testing.T) {
	t.Parallel()

	const url = "http://stats.test/fighter-details/gone"
	fetcher := newFakeFetcher()
	fetcher.failures[url] = 99

	coord := NewCoordinator(testConfig(), fetcher, fakeClock{now: extractNow}, nil, zap.NewNop())
	profiles := NewProfiles([]string{url})

	coord.FetchNames(context.Background(), profiles)

	require.Equal(t, 3, fetcher.attemptCount(url))
	require.Equal(t, "Unknown", profiles[0].Fields["name"])
}

func TestCoordinatorStatsFailureLeavesFieldsUnchanged(t *testing.T) {
	t.Parallel()

	const url = "http://stats.test/fighter-details/gone"
	fetcher := newFakeFetcher()
	fetcher.failures[url] = 99

	coord := NewCoordinator(testConfig(), fetcher, fakeClock{now: extractNow}, nil, zap.NewNop())
	profiles := NewProfiles([]string{url})
	profiles[0].Fields["name"] = "Already Known"

	coord.FetchStats(context.Background(), profiles)

	require.Equal(t, map[string]string{"name": "Already Known"}, profiles[0].Fields)
}

func TestCoordinatorNoTaskDroppedSilently(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	urls := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		url := fmt.Sprintf("http://stats.test/fighter-details/%d", i)
		urls = append(urls, url)
		if i%3 == 0 {
			fetcher.failures[url] = 99 // this third exhausts retries
		} else {
			fetcher.pages[url] = namePage(fmt.Sprintf("Fighter %d", i))
		}
	}

	coord := NewCoordinator(testConfig(), fetcher, fakeClock{now: extractNow}, nil, zap.NewNop())
	profiles := NewProfiles(urls)

	coord.FetchNames(context.Background(), profiles)

	// Every profile settled: success or the failure sentinel, never absent.
	for _, p := range profiles {
		require.Contains(t, p.Fields, "name")
	}
}

func TestCoordinatorRespectsConcurrencyCeiling(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.ConcurrentRequests = 4

	fetcher := newFakeFetcher()
	fetcher.delay = 5 * time.Millisecond
	urls := make([]string, 0, 32)
	for i := 0; i < 32; i++ {
		url := fmt.Sprintf("http://stats.test/fighter-details/%d", i)
		urls = append(urls, url)
		fetcher.pages[url] = namePage("x")
	}

	coord := NewCoordinator(cfg, fetcher, fakeClock{now: extractNow}, nil, zap.NewNop())
	coord.FetchNames(context.Background(), NewProfiles(urls))

	require.LessOrEqual(t, atomic.LoadInt64(&fetcher.maxInFlit), int64(4))
}

func TestCoordinatorArchivesStatsPages(t *testing.T) {
	t.Parallel()

	const url = "http://stats.test/fighter-details/a"
	fetcher := newFakeFetcher()
	fetcher.pages[url] = []byte(profilePageHTML)

	arch := &recordingArchiver{}
	coord := NewCoordinator(testConfig(), fetcher, fakeClock{now: extractNow}, arch, zap.NewNop())

	coord.FetchStats(context.Background(), NewProfiles([]string{url}))

	require.Len(t, arch.names(), 1)
	require.Contains(t, arch.names()[0], "profiles/2025-06-01/")
}

type recordingArchiver struct {
	mu    sync.Mutex
	saved []string
}

func (a *recordingArchiver) PutPage(_ context.Context, name string, _ []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saved = append(a.saved, name)
	return "memory://" + name, nil
}

func (a *recordingArchiver) names() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.saved...)
}
