// Package rejections stores items the remote refused permanently, keyed by
// kind and id together with the version that was refused.
package rejections

import (
	"context"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

type Repository interface {
	Put(ctx context.Context, r *models.Rejection) error
	List(ctx context.Context) ([]*models.Rejection, error)
	Delete(ctx context.Context, kind models.ItemKind, itemID string) error
	Count(ctx context.Context) (int, error)
}
