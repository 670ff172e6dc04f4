package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"hugo-exporter/pkg/models"
)

// ProgressReporter receives one user-facing log line per event (download,
// export, skip, failure). Implementations flush incrementally so callers
// see progress while the run is in flight.
type ProgressReporter interface {
	Eventf(format string, args ...any)
}

// Exporter is what the runner drives per record.
type Exporter interface {
	Export(ctx context.Context, record models.ContentRecord, baseDir string) models.ExportOutcome
}

// ExportRunner walks an ordered record sequence, exports each record in
// turn and accumulates the run summary. Records are processed sequentially
// so progress lines arrive in input order.
type ExportRunner struct {
	exporter Exporter
	reporter ProgressReporter
	logger   *slog.Logger
}

func NewExportRunner(exporter Exporter, reporter ProgressReporter, logger *slog.Logger) *ExportRunner {
	return &ExportRunner{exporter: exporter, reporter: reporter, logger: logger}
}

// Run exports every record and returns the summary. Processed counts the
// records that were attempted; skipped records are tallied separately.
func (r *ExportRunner) Run(ctx context.Context, records []models.ContentRecord, baseDir string) models.RunSummary {
	summary := models.RunSummary{RunID: uuid.NewString()}
	r.logger.Info("export run started", "run_id", summary.RunID, "records", len(records), "base_dir", baseDir)

	for _, record := range records {
		outcome := r.exporter.Export(ctx, record, baseDir)
		switch outcome.Status {
		case models.OutcomeSkipped:
			summary.Skipped++
		case models.OutcomeExported:
			summary.Processed++
			summary.Succeeded++
		default:
			summary.Processed++
			summary.Failed++
		}
	}

	r.reporter.Eventf("export complete: processed %d, succeeded %d, failed %d, skipped %d",
		summary.Processed, summary.Succeeded, summary.Failed, summary.Skipped)
	r.logger.Info("export run finished",
		"run_id", summary.RunID,
		"processed", summary.Processed,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped)
	return summary
}
