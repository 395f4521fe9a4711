package scraper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks the number of HTTP fetch attempts dispatched.
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_requests_total",
		Help: "The total number of HTTP fetch attempts sent.",
	})
	// RequestErrorsTotal tracks fetch attempts that resulted in an error.
	RequestErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_request_errors_total",
		Help: "The total number of failed HTTP fetch attempts.",
	})
	// RetriesTotal tracks backoff-and-retry cycles across all fetches.
	RetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_retries_total",
		Help: "The total number of fetch retries after a transport failure.",
	})
	// StatsFailuresTotal tracks profiles whose stats phase failed terminally.
	StatsFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_stats_failures_total",
		Help: "The total number of profiles whose stats fetch exhausted retries.",
	})
	// ProfilesScrapedTotal tracks profiles whose stats were fully merged.
	ProfilesScrapedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_profiles_scraped_total",
		Help: "The total number of fighter profiles successfully scraped.",
	})
	// ProfilesDiscovered reports the size of the last discovered URL set.
	ProfilesDiscovered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scraper_profiles_discovered",
		Help: "The number of unique fighter profile URLs found by discovery.",
	})
)
