package rejections

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, rej *models.Rejection) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_rejections (item_id, item_kind, household_id, reason, last_modified, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id, item_kind) DO UPDATE SET
			household_id = excluded.household_id,
			reason = excluded.reason,
			last_modified = excluded.last_modified,
			created_at = excluded.created_at
	`, rej.ItemID, string(rej.Kind), rej.HouseholdID, rej.Reason,
		models.ToMillis(rej.LastModified), models.ToMillis(rej.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to record rejection of %s %s: %w", rej.Kind, rej.ItemID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Rejection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, item_kind, household_id, reason, last_modified, created_at
		FROM sync_rejections ORDER BY created_at, item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select rejections: %w", err)
	}
	defer rows.Close()

	var result []*models.Rejection
	for rows.Next() {
		var (
			rej                     models.Rejection
			kind                    string
			lastModified, createdAt int64
		)
		if err := rows.Scan(&rej.ItemID, &kind, &rej.HouseholdID, &rej.Reason, &lastModified, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan rejection: %w", err)
		}
		rej.Kind = models.ItemKind(kind)
		rej.LastModified = models.FromMillis(lastModified)
		rej.CreatedAt = models.FromMillis(createdAt)
		result = append(result, &rej)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rejections: %w", err)
	}
	return result, nil
}

// Delete is a no-op when no rejection is recorded.
func (r *SQLiteRepository) Delete(ctx context.Context, kind models.ItemKind, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sync_rejections WHERE item_kind = ? AND item_id = ?`, string(kind), itemID)
	if err != nil {
		return fmt.Errorf("failed to clear rejection of %s %s: %w", kind, itemID, err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_rejections`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rejections: %w", err)
	}
	return n, nil
}
