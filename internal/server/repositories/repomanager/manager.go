// Package repomanager wires the server repositories to a storage backend:
// PostgreSQL (with goose migrations) or process memory.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/housekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/housekeeper/internal/server/repositories/documents"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Documents() documents.Repository
	// WithTx runs fn with repositories bound to one transaction. fn must not
	// keep them after it returns.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
	Close() error
}

// Repositories groups the repositories of one transaction.
type Repositories struct {
	Accounts  accounts.Repository
	Documents documents.Repository
}
