package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/housekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/housekeeper/internal/server/repositories/documents"
)

// MemoryRepositoryManager keeps everything in process memory. Transactions
// are serialized by a single lock.
type MemoryRepositoryManager struct {
	txMu      sync.Mutex
	accounts  *accounts.MemoryRepository
	documents *documents.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts:  accounts.NewMemoryRepository(),
		documents: documents.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *MemoryRepositoryManager) Documents() documents.Repository {
	return m.documents
}

// WithTx serializes fn against other transactions. Writes made before an
// error are not rolled back.
func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, Repositories{Accounts: m.accounts, Documents: m.documents})
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
