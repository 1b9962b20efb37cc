// Package documents stores JSON documents keyed by slash-separated paths.
// A document's collection is its path without the last segment.
package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when nothing is stored at path.
	Get(ctx context.Context, path string) (*models.StoredDocument, error)
	// Set creates or replaces the document at doc.Path and fills doc.UpdatedAt.
	Set(ctx context.Context, doc *models.StoredDocument) error
	// Delete returns common.ErrorNotFound when nothing is stored at path.
	Delete(ctx context.Context, path string) error
	// Query returns the documents of collection whose top-level field equals value.
	Query(ctx context.Context, collection, field string, value any) ([]*models.StoredDocument, error)
	// Merge overwrites the given top-level fields of an existing document and
	// returns the result.
	Merge(ctx context.Context, path string, fields models.Document) (*models.StoredDocument, error)
}

func encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return b, nil
}

func decode(b []byte) (models.Document, error) {
	var d models.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if d == nil {
		d = models.Document{}
	}
	return d, nil
}
