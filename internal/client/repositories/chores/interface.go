package chores

import (
	"context"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

type Repository interface {
	// Upsert inserts the chore or overwrites every column of an existing row.
	Upsert(ctx context.Context, chore *models.Chore) error
	// Get returns common.ErrorNotFound when the chore is not cached.
	Get(ctx context.Context, id string) (*models.Chore, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*models.Chore, error)
	ListUnsynced(ctx context.Context) ([]*models.Chore, error)
	CountUnsynced(ctx context.Context) (int, error)
	// MarkSynced reports whether the row was flipped.
	MarkSynced(ctx context.Context, id string, lastModified time.Time) (bool, error)
	// Delete returns common.ErrorNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}
