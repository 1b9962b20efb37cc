package client

import (
	"context"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

// DocumentStore is the remote authoritative store as seen by the sync layer.
type DocumentStore interface {
	// Get returns ErrNotFound when no document exists at path.
	Get(ctx context.Context, path string) (models.Document, error)
	// Set overwrites the whole document.
	Set(ctx context.Context, path string, doc models.Document) error
	// Delete succeeds when the document is already gone.
	Delete(ctx context.Context, path string) error
	QueryByField(ctx context.Context, collection, field string, value any) ([]models.Document, error)
	// UpdateFields merges fields into an existing document.
	UpdateFields(ctx context.Context, path string, fields map[string]any) error
	Ping(ctx context.Context) error
}

// Client is the full remote API used by the CLI.
type Client interface {
	DocumentStore
	Register(ctx context.Context, email, password, displayName string) (string, error)
	// Login authenticates and keeps the issued token for later calls.
	Login(ctx context.Context, email, password string) (userID, token string, err error)
	SetAccessToken(token string)
	AvatarUploadURL(ctx context.Context) (key, url string, err error)
	AvatarDownloadURL(ctx context.Context, key string) (string, error)
	Close() error
}
