package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/clock/system"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/pipeline"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/scraper"
)

// newScrapeCmd creates the 'scrape' subcommand, which runs one full
// discover-fetch-normalize-persist pass over the fighter statistics site.
func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Runs one full scrape of the fighter statistics site",
		Long: `Discovers every fighter profile from the per-letter index pages, fetches
names and statistics under the configured concurrency ceiling, filters out
fighters with too few UFC fights, and upserts the rest into the store.`,

		RunE: runScrapeCommand,
	}
}

func runScrapeCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	cfg, err := scraper.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load scraper config: %w", err)
	}

	fetcher, err := scraper.NewCollyFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	clk := system.New()
	coordinator := scraper.NewCoordinator(cfg, fetcher, clk, appInstance.GetArchive(), logger)
	discoverer := scraper.NewDiscoverer(cfg, coordinator, logger)
	driver := pipeline.NewDriver(
		discoverer,
		coordinator,
		appInstance.GetDatabase(),
		appInstance.GetPublisher(),
		clk,
		logger,
	)

	report, err := driver.Run(cmd.Context())
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run scrape: %w", err)
	}

	logger.Info("scrape command finished",
		zap.String("run_id", report.RunID),
		zap.Int("discovered", report.Discovered),
		zap.Int("inserted", report.Inserted),
		zap.Int("updated", report.Updated),
		zap.Duration("elapsed", report.Elapsed),
	)
	return nil
}
