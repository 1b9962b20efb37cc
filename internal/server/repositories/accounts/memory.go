package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/server/models"
)

// MemoryRepository keeps accounts in process memory. Used by the memory
// storage backend and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]models.Account)}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	account.CreatedAt = time.Now().UTC()
	stored := *account
	stored.PasswordHash = append([]byte(nil), account.PasswordHash...)
	r.byEmail[account.Email] = stored
	return account, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a.PasswordHash = append([]byte(nil), a.PasswordHash...)
	return &a, nil
}
