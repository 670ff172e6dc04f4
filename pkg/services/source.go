package services

import (
	"context"

	"hugo-exporter/pkg/models"
)

// ContentSource hands the pipeline an ordered sequence of published
// records for the requested content type ("all" for every known type).
// Implementations are read-only and already authenticated.
type ContentSource interface {
	Records(ctx context.Context, contentType string) ([]models.ContentRecord, error)
}
