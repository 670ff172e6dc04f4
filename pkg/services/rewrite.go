package services

import (
	"fmt"
	"regexp"

	"hugo-exporter/pkg/models"
)

var (
	imgTagRe = regexp.MustCompile(`(?i)<img[^>]+src="([^"]+)"[^>]*>`)
	altRe    = regexp.MustCompile(`(?i)alt="([^"]*)"`)
)

// defaultAlt is used when no inline occurrence carried an alt text.
const defaultAlt = "image"

// MarkupRewriter finds embedded image tags in a record body and rewrites
// them to local shortcodes once their assets have been localized. Matching
// is deliberately literal: the locator must appear in the body exactly as
// it was extracted.
type MarkupRewriter struct{}

func NewMarkupRewriter() *MarkupRewriter { return &MarkupRewriter{} }

// ExtractReferences scans body for image tags and returns each distinct
// locator in first-seen order. The featured locator (if any) is appended
// even when it never appears inline. Alt text comes from the last inline
// occurrence that carries one.
func (r *MarkupRewriter) ExtractReferences(body, featured string) []models.MediaReference {
	var order []string
	alts := make(map[string]string)
	seen := make(map[string]bool)

	for _, m := range imgTagRe.FindAllStringSubmatch(body, -1) {
		tag, src := m[0], m[1]
		if src == "" {
			continue
		}
		if !seen[src] {
			seen[src] = true
			order = append(order, src)
		}
		if am := altRe.FindStringSubmatch(tag); am != nil && am[1] != "" {
			alts[src] = am[1]
		}
	}

	if featured != "" && !seen[featured] {
		order = append(order, featured)
	}

	refs := make([]models.MediaReference, 0, len(order))
	for _, src := range order {
		refs = append(refs, models.MediaReference{URL: src, Alt: alts[src]})
	}
	return refs
}

// Rewrite replaces every image tag whose src locator has a localized asset
// with a `{{< img >}}` shortcode. Tags whose asset failed to localize stay
// in the body verbatim.
func (r *MarkupRewriter) Rewrite(body string, refs []models.MediaReference, localized map[string]models.LocalizedAsset) string {
	for _, ref := range refs {
		asset, ok := localized[ref.URL]
		if !ok {
			continue
		}

		alt := ref.Alt
		if alt == "" {
			alt = defaultAlt
		}

		tagRe := regexp.MustCompile(`(?i)<img[^>]+src="` + regexp.QuoteMeta(ref.URL) + `"[^>]*>`)
		shortcode := fmt.Sprintf(`{{< img src="%s" alt="%s" >}}`, asset.Filename, alt)
		body = tagRe.ReplaceAllLiteralString(body, shortcode)
	}
	return body
}
