package models

// MediaReference is a media locator found in (or attached to) a record,
// kept exactly as it appeared so rewriting can match it literally.
type MediaReference struct {
	URL string
	Alt string // from the last inline occurrence, empty if none
}

// LocalizedAsset is the result of fetching a MediaReference into a bundle
// directory. Filename is `{base}.{srcExt}.{outputFormat}` and doubles as
// the bundle-relative path.
type LocalizedAsset struct {
	SourceURL string
	Filename  string
}

// Outcome classification for a single record.
const (
	OutcomeExported = "exported"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// ExportOutcome is the per-record result of BundleExporter.Export.
type ExportOutcome struct {
	Status        string
	Err           error // set when Status == OutcomeFailed
	AssetsOK      int
	AssetFailures int
}

// RunSummary aggregates a whole export run. Processed counts records that
// were attempted (skipped records are excluded and counted separately).
type RunSummary struct {
	RunID     string `json:"run_id"`
	Processed int    `json:"processed"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
}

// BundleInfo describes one exported page bundle on disk.
type BundleInfo struct {
	Path   string `json:"path"` // relative to the content dir
	Title  string `json:"title"`
	Layout string `json:"layout,omitempty"`
	Assets int    `json:"assets"`
}
