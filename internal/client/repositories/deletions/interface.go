// Package deletions stores the pending-deletion ledger: items removed locally
// whose remote copy has not been deleted yet. Only the sync worker clears it.
package deletions

import (
	"context"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

type Repository interface {
	// Add records a deletion. Adding the same item twice keeps the first row.
	Add(ctx context.Context, d *models.PendingDeletion) error
	// List returns the ledger in ascending id order.
	List(ctx context.Context) ([]*models.PendingDeletion, error)
	// ItemIDs returns the ids of pending deletions in a household.
	ItemIDs(ctx context.Context, householdID string) (map[string]struct{}, error)
	Remove(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
