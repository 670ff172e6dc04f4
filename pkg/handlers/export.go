package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"hugo-exporter/pkg/config"
	"hugo-exporter/pkg/models"
	"hugo-exporter/pkg/services"
)

type exportRequest struct {
	BaseExportDir string `json:"base_export_dir"`
	PostType      string `json:"post_type" binding:"required,oneof=article page product all"`
}

type exportResponse struct {
	Log     string            `json:"log"`
	Summary string            `json:"summary"`
	Counts  models.RunSummary `json:"counts"`
}

// streamReporter writes each progress line to the response as it happens
// and keeps the full log for the final payload.
type streamReporter struct {
	writer gin.ResponseWriter
	log    strings.Builder
}

func (r *streamReporter) Eventf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	r.log.WriteString(line)
	r.log.WriteString("\n")
	fmt.Fprintln(r.writer, line)
	r.writer.Flush()
}

// Export streams one log line per event while the run is in flight, then a
// final JSON document with the full log and the summary counts. The
// pipeline is assembled per request; nothing outlives the run.
func Export(src services.ContentSource, index *services.BundleIndex, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req exportRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export request: " + err.Error()})
			return
		}

		baseDir := req.BaseExportDir
		if baseDir == "" {
			baseDir = config.ExportDir
		} else if !filepath.IsAbs(baseDir) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "base_export_dir must be absolute"})
			return
		}

		if src == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content source not configured"})
			return
		}

		records, err := src.Records(c.Request.Context(), req.PostType)
		if err != nil {
			logger.Error("content query failed", "type", req.PostType, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query content"})
			return
		}

		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Status(http.StatusOK)

		reporter := &streamReporter{writer: c.Writer}
		reporter.Eventf("starting export of %d records...", len(records))

		localizer := services.NewAssetLocalizer(config.SiteURL, config.OutputFormat, config.FetchTimeout)
		exporter := services.NewBundleExporter(localizer, reporter, logger)
		runner := services.NewExportRunner(exporter, reporter, logger)

		summary := runner.Run(c.Request.Context(), records, baseDir)
		index.Invalidate()

		final, _ := json.Marshal(exportResponse{
			Log: reporter.log.String(),
			Summary: fmt.Sprintf("export complete: processed %d, succeeded %d, failed %d, skipped %d",
				summary.Processed, summary.Succeeded, summary.Failed, summary.Skipped),
			Counts: summary,
		})
		c.Writer.Write(final)
		c.Writer.Write([]byte("\n"))
		c.Writer.Flush()
	}
}
