package models

import "time"

// Content type tags as delivered by the content source. Anything outside
// this set is skipped by the exporter.
const (
	TypeArticle = "article"
	TypePage    = "page"
	TypeProduct = "product"
	TypeAll     = "all"
)

// ContentRecord is an immutable snapshot of one exportable item. It is
// constructed by the content source and read-only to the pipeline.
type ContentRecord struct {
	ID            int64
	Type          string
	Title         string
	Slug          string
	Date          time.Time
	Body          string
	Categories    []string
	Tags          []string
	FeaturedImage string // absolute locator, empty if none

	// Product is set only for product records, and only when product
	// metadata was actually available on the source.
	Product *ProductFields
}

// ProductFields carries the product-only metadata of a record.
type ProductFields struct {
	SKU              string
	Categories       []string
	Tags             []string
	BuyLink          string
	ShortDescription string
}
