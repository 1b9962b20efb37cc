// Package households caches households the session user belongs to.
package households

import (
	"context"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

type Repository interface {
	Upsert(ctx context.Context, h *models.Household) error
	// Get returns common.ErrorNotFound when the household is not cached.
	Get(ctx context.Context, id string) (*models.Household, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
}
