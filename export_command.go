package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hugo-exporter/pkg/config"
	"hugo-exporter/pkg/models"
	"hugo-exporter/pkg/services"
)

// stdoutReporter prints progress lines as they happen, one per event.
type stdoutReporter struct{}

func (stdoutReporter) Eventf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

func newExportCommand() *cobra.Command {
	var (
		exportDir string
		postType  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run a one-shot export and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Init()
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			switch postType {
			case models.TypeArticle, models.TypePage, models.TypeProduct, models.TypeAll:
			default:
				return fmt.Errorf("invalid --type %q (want article, page, product or all)", postType)
			}

			if exportDir == "" {
				exportDir = config.ExportDir
			}

			src, err := openSource(logger)
			if err != nil {
				return err
			}
			if src == nil {
				return fmt.Errorf("WP_DB_DSN is required for export")
			}

			records, err := src.Records(cmd.Context(), postType)
			if err != nil {
				return fmt.Errorf("query content: %w", err)
			}

			reporter := stdoutReporter{}
			reporter.Eventf("starting export of %d records...", len(records))

			localizer := services.NewAssetLocalizer(config.SiteURL, config.OutputFormat, config.FetchTimeout)
			exporter := services.NewBundleExporter(localizer, reporter, logger)
			runner := services.NewExportRunner(exporter, reporter, logger)

			runner.Run(cmd.Context(), records, exportDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&exportDir, "dir", "", "base export directory (defaults to EXPORT_DIR)")
	cmd.Flags().StringVar(&postType, "type", models.TypeAll, "content type to export: article, page, product or all")
	return cmd
}
