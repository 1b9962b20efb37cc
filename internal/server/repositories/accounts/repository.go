// Package accounts stores login credentials.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/housekeeper/internal/server/models"
)

type Repository interface {
	// Create returns common.ErrorAlreadyExists when the email is taken.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}
