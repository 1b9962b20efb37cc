package deletions

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

func (r *SQLiteRepository) Add(ctx context.Context, d *models.PendingDeletion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_deletions (item_id, item_kind, household_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(item_id) DO NOTHING
	`, d.ItemID, string(d.Kind), d.HouseholdID, models.ToMillis(d.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to queue deletion of %s %s: %w", d.Kind, d.ItemID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.PendingDeletion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, item_kind, household_id, created_at
		FROM pending_deletions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending deletions: %w", err)
	}
	defer rows.Close()

	var result []*models.PendingDeletion
	for rows.Next() {
		var (
			d         models.PendingDeletion
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&d.ID, &d.ItemID, &kind, &d.HouseholdID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending deletion: %w", err)
		}
		d.Kind = models.ItemKind(kind)
		d.CreatedAt = models.FromMillis(createdAt)
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending deletions: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) ItemIDs(ctx context.Context, householdID string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id FROM pending_deletions WHERE household_id = ?`, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending deletion ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pending deletion id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending deletion ids: %w", err)
	}
	return ids, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending_deletions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove pending deletion %d: %w", id, err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_deletions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending deletions: %w", err)
	}
	return n, nil
}
