package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"hugo-exporter/pkg/models"
)

// validExts is the accepted set of source image extensions. Anything else
// falls back to jpg rather than failing the asset.
var validExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
}

const fallbackExt = "jpg"

// AssetLocalizer fetches remote media into a bundle directory, renaming it
// to `{base}.{srcExt}.{outputFormat}`. The caller guarantees the target
// directory exists.
type AssetLocalizer struct {
	client       *http.Client
	siteURL      string
	outputFormat string
}

func NewAssetLocalizer(siteURL, outputFormat string, timeout time.Duration) *AssetLocalizer {
	return &AssetLocalizer{
		client:       &http.Client{Timeout: timeout},
		siteURL:      strings.TrimRight(siteURL, "/"),
		outputFormat: outputFormat,
	}
}

// LocalizedFilename derives the output filename for a locator without
// fetching anything. It is a pure function of locator + output format, so
// re-exports land on the same path.
func (l *AssetLocalizer) LocalizedFilename(locator string) string {
	base, ext := splitImageName(locator)
	return fmt.Sprintf("%s.%s.%s", base, ext, l.outputFormat)
}

// Localize fetches the locator and writes the bytes to targetDir under the
// derived filename. Transport errors, non-200 responses and empty bodies
// all classify as asset_fetch_failed; none of them abort the record.
func (l *AssetLocalizer) Localize(ctx context.Context, locator, targetDir string) (models.LocalizedAsset, error) {
	fetchURL := l.resolve(locator)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return models.LocalizedAsset{}, &ExportError{Kind: KindAssetFetchFailed, Subject: locator, Err: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return models.LocalizedAsset{}, &ExportError{Kind: KindAssetFetchFailed, Subject: locator, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.LocalizedAsset{}, &ExportError{
			Kind:    KindAssetFetchFailed,
			Subject: locator,
			Err:     fmt.Errorf("status code %d", resp.StatusCode),
		}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.LocalizedAsset{}, &ExportError{Kind: KindAssetFetchFailed, Subject: locator, Err: err}
	}
	if len(content) == 0 {
		return models.LocalizedAsset{}, &ExportError{
			Kind:    KindAssetFetchFailed,
			Subject: locator,
			Err:     fmt.Errorf("empty response body"),
		}
	}

	filename := l.LocalizedFilename(locator)
	if err := os.WriteFile(filepath.Join(targetDir, filename), content, 0644); err != nil {
		return models.LocalizedAsset{}, &ExportError{Kind: KindAssetFetchFailed, Subject: locator, Err: err}
	}

	return models.LocalizedAsset{SourceURL: locator, Filename: filename}, nil
}

// resolve turns a relative locator into an absolute URL against the site
// root. Absolute locators pass through untouched.
func (l *AssetLocalizer) resolve(locator string) string {
	if strings.Contains(locator, "//") {
		return locator
	}
	if strings.HasPrefix(locator, "/") {
		return l.siteURL + locator
	}
	return l.siteURL + "/" + locator
}

// splitImageName extracts the base filename and a validated extension from
// the locator's path component.
func splitImageName(locator string) (string, string) {
	p := locator
	if u, err := url.Parse(locator); err == nil && u.Path != "" {
		p = u.Path
	}
	name := path.Base(p)

	ext := strings.TrimPrefix(path.Ext(name), ".")
	base := strings.TrimSuffix(name, path.Ext(name))

	ext = strings.ToLower(ext)
	if !validExts[ext] {
		ext = fallbackExt
	}
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return base, ext
}
