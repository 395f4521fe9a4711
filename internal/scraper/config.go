package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every configuration knob that influences a scrape run.
// All values originate from Viper so the scraper can be configured via files,
// env vars, or CLI flags.
type Config struct {
	IndexURLTemplate   string
	UserAgent          string
	ConcurrentRequests int
	Retries            int
	RetryBackoff       time.Duration
	RequestTimeout     time.Duration
	InsecureSkipVerify bool
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		IndexURLTemplate:   v.GetString("scraper.index_url_template"),
		UserAgent:          v.GetString("scraper.user_agent"),
		ConcurrentRequests: v.GetInt("scraper.concurrent_requests"),
		Retries:            v.GetInt("scraper.retries"),
		RetryBackoff:       v.GetDuration("scraper.retry_backoff"),
		RequestTimeout:     v.GetDuration("scraper.request_timeout"),
		InsecureSkipVerify: v.GetBool("scraper.insecure_skip_verify"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if !strings.Contains(c.IndexURLTemplate, "%s") {
		return fmt.Errorf("scraper.index_url_template must contain a %%s letter placeholder")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("scraper.user_agent must be set")
	}
	if c.ConcurrentRequests <= 0 {
		return fmt.Errorf("scraper.concurrent_requests must be > 0")
	}
	if c.Retries <= 0 {
		return fmt.Errorf("scraper.retries must be > 0")
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("scraper.retry_backoff must be >= 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("scraper.request_timeout must be > 0")
	}
	return nil
}
