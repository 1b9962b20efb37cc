package notes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

// Repository mirrors chores.Repository for notes.
type Repository interface {
	Upsert(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, id string) (*models.Note, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*models.Note, error)
	ListUnsynced(ctx context.Context) ([]*models.Note, error)
	CountUnsynced(ctx context.Context) (int, error)
	MarkSynced(ctx context.Context, id string, lastModified time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}
