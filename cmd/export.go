package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/database"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/export"
)

// newExportCmd creates the 'export' subcommand, which dumps the stored
// fighters to a CSV file.
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exports stored fighters to CSV",
		Long: `Reads every fighter from the configured store and writes them as CSV,
one row per fighter with a header row first.`,

		RunE: runExportCommand,
	}
	cmd.Flags().StringP("output", "o", "", "output file path (default from export.path config)")
	cmd.Flags().String("weight-class", "", "only export fighters in this division")
	return cmd
}

func runExportCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("read output flag: %w", err)
	}
	if path == "" {
		path = viper.GetString("export.path")
	}
	weightClass, err := cmd.Flags().GetString("weight-class")
	if err != nil {
		return fmt.Errorf("read weight-class flag: %w", err)
	}

	fighters, err := appInstance.GetDatabase().ListFighters(cmd.Context(), database.Filter{
		WeightClass: weightClass,
	})
	if err != nil {
		return fmt.Errorf("list fighters: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := export.WriteCSV(f, fighters); err != nil {
		f.Close() //nolint:errcheck // the write failure is primary
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}

	logger.Info("export complete",
		zap.String("path", path),
		zap.Int("fighters", len(fighters)),
	)
	return nil
}
