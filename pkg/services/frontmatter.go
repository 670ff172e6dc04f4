package services

import (
	"bytes"
	"fmt"
	"strings"

	"hugo-exporter/pkg/models"
)

// FrontMatterBuilder serializes a record's metadata into the YAML front
// matter of its bundle index document. Fields are hand-emitted in a fixed
// order so re-exports are byte-identical; a generic YAML encoder would
// reorder keys and re-quote scalars.
type FrontMatterBuilder struct{}

func NewFrontMatterBuilder() *FrontMatterBuilder { return &FrontMatterBuilder{} }

// Build returns the delimited front-matter block followed by a blank line,
// ready for body concatenation. featured is nil when the featured image was
// absent or failed to localize; assets holds every localized asset in
// discovery order.
func (b *FrontMatterBuilder) Build(record models.ContentRecord, layout string, assets []models.LocalizedAsset, featured *models.LocalizedAsset) string {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	fmt.Fprintf(&buf, "layout: %s\n", layout)
	fmt.Fprintf(&buf, "title: \"%s\"\n", EscapeYAMLString(record.Title))
	fmt.Fprintf(&buf, "slug: \"%s\"\n", EscapeYAMLString(record.Slug))
	fmt.Fprintf(&buf, "date: %s\n", record.Date.Format("2006-01-02 15:04:05"))

	writeList(&buf, "categories", record.Categories)
	writeList(&buf, "tags", record.Tags)

	if featured != nil {
		fmt.Fprintf(&buf, "featuredImage: %s\n", featured.Filename)
	}

	if len(assets) > 0 {
		buf.WriteString("images:\n")
		for _, asset := range assets {
			fmt.Fprintf(&buf, "- %s\n", asset.Filename)
		}
	}

	if record.Product != nil {
		writeProductFields(&buf, record.Product)
	}

	buf.WriteString("---\n\n")
	return buf.String()
}

func writeProductFields(buf *bytes.Buffer, p *models.ProductFields) {
	if p.SKU != "" {
		fmt.Fprintf(buf, "sku: \"%s\"\n", EscapeYAMLString(p.SKU))
	}
	writeList(buf, "product_categories", p.Categories)
	writeList(buf, "product_tags", p.Tags)
	if p.BuyLink != "" {
		fmt.Fprintf(buf, "buy_link: %s\n", EscapeYAMLString(p.BuyLink))
	}
	if p.ShortDescription != "" {
		fmt.Fprintf(buf, "description: >\n  %s\n", EscapeYAMLString(p.ShortDescription))
	}
}

func writeList(buf *bytes.Buffer, key string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(buf, "%s:\n", key)
	for _, v := range values {
		fmt.Fprintf(buf, "- %s\n", EscapeYAMLString(v))
	}
}

// EscapeYAMLString escapes double quotes and turns embedded line breaks
// into continuation-indented breaks so the scalar stays parseable inside
// the front-matter block.
func EscapeYAMLString(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", "\n  ")
	return s
}
