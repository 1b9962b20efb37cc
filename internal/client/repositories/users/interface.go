// Package users caches user profiles locally.
package users

import (
	"context"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

type Repository interface {
	Upsert(ctx context.Context, u *models.User) error
	// Get returns common.ErrorNotFound when the user is not cached.
	Get(ctx context.Context, id string) (*models.User, error)
}
