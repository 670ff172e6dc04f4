// Package wordpress reads published content straight out of a WordPress
// database and adapts it to the exporter's record model.
package wordpress

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hugo-exporter/pkg/models"
)

// WP post_type values for each exporter content type.
var postTypes = map[string]string{
	models.TypeArticle: "post",
	models.TypePage:    "page",
	models.TypeProduct: "product",
}

// recordTypes is the reverse mapping, WP post_type -> exporter type.
var recordTypes = map[string]string{
	"post":    models.TypeArticle,
	"page":    models.TypePage,
	"product": models.TypeProduct,
}

// Source queries a WordPress MySQL database for exportable content.
type Source struct {
	db     *sql.DB
	prefix string
}

func NewSource(db *sql.DB, tablePrefix string) *Source {
	if tablePrefix == "" {
		tablePrefix = "wp_"
	}
	return &Source{db: db, prefix: tablePrefix}
}

// Records returns published records of the selected type, newest first.
// "all" covers the three known types; unknown post types never leave the
// database.
func (s *Source) Records(ctx context.Context, contentType string) ([]models.ContentRecord, error) {
	query := fmt.Sprintf(`
		SELECT ID, post_type, post_title, post_name, post_date, post_content
		FROM %sposts
		WHERE post_status = 'publish' AND post_type IN (?, ?, ?)
		ORDER BY post_date DESC`, s.prefix)

	args := []any{"post", "page", "product"}
	if contentType != models.TypeAll {
		wpType, ok := postTypes[contentType]
		if !ok {
			return nil, fmt.Errorf("unknown content type %q", contentType)
		}
		query = fmt.Sprintf(`
			SELECT ID, post_type, post_title, post_name, post_date, post_content
			FROM %sposts
			WHERE post_status = 'publish' AND post_type = ?
			ORDER BY post_date DESC`, s.prefix)
		args = []any{wpType}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var records []models.ContentRecord
	for rows.Next() {
		var (
			id      int64
			wpType  string
			title   string
			slug    string
			rawDate string
			body    string
		)
		if err := rows.Scan(&id, &wpType, &title, &slug, &rawDate, &body); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}

		record := models.ContentRecord{
			ID:    id,
			Type:  recordTypes[wpType],
			Title: title,
			Slug:  slug,
			Body:  body,
		}
		if date, err := time.Parse("2006-01-02 15:04:05", rawDate); err == nil {
			record.Date = date
		}

		record.Categories, _ = s.terms(ctx, id, "category")
		record.Tags, _ = s.terms(ctx, id, "post_tag")
		record.FeaturedImage = s.featuredImage(ctx, id)

		if wpType == "product" {
			record.Product = s.productFields(ctx, id)
		}

		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Source) terms(ctx context.Context, postID int64, taxonomy string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT t.name
		FROM %[1]sterms t
		JOIN %[1]sterm_taxonomy tt ON t.term_id = tt.term_id
		JOIN %[1]sterm_relationships tr ON tt.term_taxonomy_id = tr.term_taxonomy_id
		WHERE tr.object_id = ? AND tt.taxonomy = ?`, s.prefix)

	rows, err := s.db.QueryContext(ctx, query, postID, taxonomy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// featuredImage resolves _thumbnail_id to the attachment URL. Any lookup
// failure degrades to "no featured image".
func (s *Source) featuredImage(ctx context.Context, postID int64) string {
	thumbnailID := s.meta(ctx, postID, "_thumbnail_id")
	if thumbnailID == "" {
		return ""
	}

	var guid string
	query := fmt.Sprintf("SELECT guid FROM %sposts WHERE ID = ?", s.prefix)
	if err := s.db.QueryRowContext(ctx, query, thumbnailID).Scan(&guid); err != nil {
		return ""
	}
	return guid
}

// productFields gathers WooCommerce metadata. Returns nil when no product
// data exists so product-only front matter is omitted entirely.
func (s *Source) productFields(ctx context.Context, postID int64) *models.ProductFields {
	p := &models.ProductFields{
		SKU:              s.meta(ctx, postID, "_sku"),
		BuyLink:          s.meta(ctx, postID, "_buy_link"),
		ShortDescription: s.meta(ctx, postID, "_short_description"),
	}
	p.Categories, _ = s.terms(ctx, postID, "product_cat")
	p.Tags, _ = s.terms(ctx, postID, "product_tag")

	if p.SKU == "" && p.BuyLink == "" && p.ShortDescription == "" &&
		len(p.Categories) == 0 && len(p.Tags) == 0 {
		return nil
	}
	return p
}

func (s *Source) meta(ctx context.Context, postID int64, key string) string {
	var value sql.NullString
	query := fmt.Sprintf("SELECT meta_value FROM %spostmeta WHERE post_id = ? AND meta_key = ?", s.prefix)
	if err := s.db.QueryRowContext(ctx, query, postID, key).Scan(&value); err != nil {
		return ""
	}
	return value.String
}
