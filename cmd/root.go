// Package cmd defines and implements the CLI commands for the scraper
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/app"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/archive"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/database"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/logging"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/notify"
	"github.com/Dellali-Chakib/ufc-fight-scraper/pkg/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface commands use. It allows injecting a
// mock app during tests.
type App interface {
	Close()
	GetLogger() *zap.Logger
	GetDatabase() database.Provider
	GetArchive() archive.Provider
	GetPublisher() notify.Publisher
}

// newApp is the application factory. It is a variable so tests can replace it
// with a mock factory.
var newApp = func(ctx context.Context) (App, error) {
	return app.NewApp(ctx)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ufc-scraper",
		Short: "A concurrent scraper for UFC fighter statistics.",
		Long: `ufc-scraper walks the fighter statistics site's per-letter index pages,
fetches every fighter profile under a bounded concurrency ceiling, normalizes
the scraped fields into typed records, and persists them for querying.`,

		// Runs after config is loaded but before the subcommand's RunE:
		// the place to build and inject the application services.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize application services: %w", err)
			}
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cobra.OnInitialize(config.InitConfig)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ufc-scraper/config.yaml)")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point.
func Execute() {
	logging.InitLogger(viper.GetBool("logging.development"))

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("command execution failed", zap.Error(err))
	}
}
