// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file and environment variables, providing a unified configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/logging"
)

// InitConfig initializes the application's configuration using Viper. It sets
// default values, defines configuration search paths, and enables reading
// from environment variables. Call it once at application startup.
func InitConfig() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/ufc-scraper/")
	viper.AddConfigPath("$HOME/.ufc-scraper")

	// Scraper defaults. The site serves per-letter index pages and blocks
	// obvious bot user agents, hence the browser UA string.
	viper.SetDefault("scraper.index_url_template", "http://ufcstats.com/statistics/fighters?char=%s&page=all")
	viper.SetDefault("scraper.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36")
	viper.SetDefault("scraper.concurrent_requests", 10)
	viper.SetDefault("scraper.retries", 3)
	viper.SetDefault("scraper.retry_backoff", "1s")
	viper.SetDefault("scraper.request_timeout", "15s")
	viper.SetDefault("scraper.insecure_skip_verify", true)

	viper.SetDefault("database.provider", "noop")
	viper.SetDefault("database.table", "fighters")
	viper.SetDefault("archive.provider", "noop")
	viper.SetDefault("archive.local.base_dir", "data/pages")
	viper.SetDefault("notify.provider", "noop")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("logging.development", false)
	viper.SetDefault("export.path", "fighters.csv")

	// e.g. SCRAPER_DATABASE_PROVIDER=postgres
	viper.SetEnvPrefix("SCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logging.L.Warn("config file not found; using defaults and environment variables")
		} else {
			logging.L.Error("error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
