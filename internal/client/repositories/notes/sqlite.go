package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/dbx"
)

const selectColumns = `SELECT id, household_id, title, content, created_by, created_at,
	last_modified, synced FROM notes`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, n *models.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, household_id, title, content, created_by, created_at, last_modified, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			household_id = excluded.household_id,
			title = excluded.title,
			content = excluded.content,
			created_by = excluded.created_by,
			created_at = excluded.created_at,
			last_modified = excluded.last_modified,
			synced = excluded.synced
	`, n.ID, n.HouseholdID, n.Title, n.Content, n.CreatedBy,
		models.ToMillis(n.CreatedAt), models.ToMillis(n.LastModified), n.Synced)
	if err != nil {
		return fmt.Errorf("failed to upsert note %s: %w", n.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note %s: %w", id, err)
	}
	return n, nil
}

func (r *SQLiteRepository) ListByHousehold(ctx context.Context, householdID string) ([]*models.Note, error) {
	return r.list(ctx, selectColumns+` WHERE household_id = ? ORDER BY created_at DESC, id`, householdID)
}

func (r *SQLiteRepository) ListUnsynced(ctx context.Context) ([]*models.Note, error) {
	return r.list(ctx, selectColumns+` WHERE synced = 0 ORDER BY last_modified, id`)
}

func (r *SQLiteRepository) CountUnsynced(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE synced = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unsynced notes: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, lastModified time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET synced = 1 WHERE id = ? AND last_modified = ?`,
		id, models.ToMillis(lastModified))
	if err != nil {
		return false, fmt.Errorf("failed to mark note %s synced: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark note %s synced: %w", id, err)
	}
	return n == 1, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate note rows: %w", err)
	}
	return result, nil
}

func scanNote(s interface{ Scan(dest ...any) error }) (*models.Note, error) {
	var (
		n                       models.Note
		createdAt, lastModified int64
	)
	if err := s.Scan(&n.ID, &n.HouseholdID, &n.Title, &n.Content, &n.CreatedBy,
		&createdAt, &lastModified, &n.Synced); err != nil {
		return nil, err
	}
	n.CreatedAt = models.FromMillis(createdAt)
	n.LastModified = models.FromMillis(lastModified)
	return &n, nil
}
