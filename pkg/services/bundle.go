package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goliatone/go-slug"

	"hugo-exporter/pkg/models"
)

// bundleType maps a content type to its Hugo layout and content subdirectory.
type bundleType struct {
	Layout string
	Dir    string
}

var typeConfig = map[string]bundleType{
	models.TypeArticle: {Layout: "post", Dir: "posts"},
	models.TypePage:    {Layout: "page", Dir: "pages"},
	models.TypeProduct: {Layout: "product", Dir: "products"},
}

// BundleExporter turns one ContentRecord into a page bundle on disk:
// directory, localized assets, rewritten body, front matter, index.md.
type BundleExporter struct {
	localizer *AssetLocalizer
	rewriter  *MarkupRewriter
	builder   *FrontMatterBuilder
	reporter  ProgressReporter
	logger    *slog.Logger
}

func NewBundleExporter(localizer *AssetLocalizer, reporter ProgressReporter, logger *slog.Logger) *BundleExporter {
	return &BundleExporter{
		localizer: localizer,
		rewriter:  NewMarkupRewriter(),
		builder:   NewFrontMatterBuilder(),
		reporter:  reporter,
		logger:    logger,
	}
}

// Export runs the full per-record pipeline. Asset failures are non-fatal
// and only counted; a failed write or an unexpected panic fails the record
// without escaping to the caller.
func (e *BundleExporter) Export(ctx context.Context, record models.ContentRecord, baseDir string) (outcome models.ExportOutcome) {
	defer func() {
		if r := recover(); r != nil {
			err := &ExportError{Kind: KindProcessingError, Subject: record.Slug, Err: fmt.Errorf("%v", r)}
			e.logger.Error("record export panicked", "id", record.ID, "error", err)
			outcome = models.ExportOutcome{Status: models.OutcomeFailed, Err: err}
		}
	}()

	bt, ok := typeConfig[record.Type]
	if !ok {
		e.reporter.Eventf("unknown content type %q, skipped", record.Type)
		return models.ExportOutcome{Status: models.OutcomeSkipped}
	}

	slugName := e.bundleSlug(record)
	bundleDir := filepath.Join(baseDir, "content", bt.Dir, slugName)
	if err := os.MkdirAll(bundleDir, 0755); err != nil {
		return e.fail(record, slugName, &ExportError{Kind: KindWriteFailed, Subject: slugName, Err: err})
	}

	refs := e.rewriter.ExtractReferences(record.Body, record.FeaturedImage)

	localized := make(map[string]models.LocalizedAsset, len(refs))
	var assets []models.LocalizedAsset
	failures := 0
	for _, ref := range refs {
		asset, err := e.localizer.Localize(ctx, ref.URL, bundleDir)
		if err != nil {
			failures++
			e.reporter.Eventf("download failed: %s - %v", ref.URL, err)
			e.logger.Warn("asset localization failed", "id", record.ID, "url", ref.URL, "error", err)
			continue
		}
		localized[ref.URL] = asset
		assets = append(assets, asset)
		e.reporter.Eventf("downloaded: %s", asset.Filename)
	}

	body := e.rewriter.Rewrite(record.Body, refs, localized)

	var featured *models.LocalizedAsset
	if record.FeaturedImage != "" {
		if asset, ok := localized[record.FeaturedImage]; ok {
			featured = &asset
		}
	}

	// Build on a copy so the emitted slug matches the bundle directory even
	// when the record arrived without one.
	fmRecord := record
	fmRecord.Slug = slugName
	frontMatter := e.builder.Build(fmRecord, bt.Layout, assets, featured)

	indexPath := filepath.Join(bundleDir, "index.md")
	if err := os.WriteFile(indexPath, []byte(frontMatter+body), 0644); err != nil {
		out := e.fail(record, slugName, &ExportError{Kind: KindWriteFailed, Subject: slugName, Err: err})
		out.AssetsOK = len(assets)
		out.AssetFailures = failures
		return out
	}

	e.reporter.Eventf("exported: %s (type: %s)", slugName, record.Type)
	return models.ExportOutcome{
		Status:        models.OutcomeExported,
		AssetsOK:      len(assets),
		AssetFailures: failures,
	}
}

func (e *BundleExporter) fail(record models.ContentRecord, slugName string, err *ExportError) models.ExportOutcome {
	e.reporter.Eventf("export failed: %s (type: %s) - %v", slugName, record.Type, err)
	e.logger.Error("record export failed", "id", record.ID, "slug", slugName, "error", err)
	return models.ExportOutcome{Status: models.OutcomeFailed, Err: err}
}

// bundleSlug falls back to a normalized title, then the record ID, when the
// source record carries no slug of its own.
func (e *BundleExporter) bundleSlug(record models.ContentRecord) string {
	if record.Slug != "" {
		return record.Slug
	}
	if normalized, err := slug.Normalize(record.Title); err == nil && normalized != "" {
		return normalized
	}
	return fmt.Sprintf("item-%d", record.ID)
}
