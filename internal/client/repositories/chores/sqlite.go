package chores

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

const selectColumns = `SELECT id, household_id, title, due_date, assigned_to, is_completed,
	completed_at, frequency, created_by, created_at, last_modified, synced FROM chores`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, c *models.Chore) error {
	var completedAt sql.NullInt64
	if c.CompletedAt != nil {
		completedAt = sql.NullInt64{Int64: models.ToMillis(*c.CompletedAt), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chores (id, household_id, title, due_date, assigned_to, is_completed,
			completed_at, frequency, created_by, created_at, last_modified, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			household_id = excluded.household_id,
			title = excluded.title,
			due_date = excluded.due_date,
			assigned_to = excluded.assigned_to,
			is_completed = excluded.is_completed,
			completed_at = excluded.completed_at,
			frequency = excluded.frequency,
			created_by = excluded.created_by,
			created_at = excluded.created_at,
			last_modified = excluded.last_modified,
			synced = excluded.synced
	`, c.ID, c.HouseholdID, c.Title, models.ToMillis(c.DueDate), c.AssignedTo, c.IsCompleted,
		completedAt, string(c.Frequency), c.CreatedBy, models.ToMillis(c.CreatedAt),
		models.ToMillis(c.LastModified), c.Synced)
	if err != nil {
		return fmt.Errorf("failed to upsert chore %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Chore, error) {
	c, err := scanChore(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chore %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListByHousehold(ctx context.Context, householdID string) ([]*models.Chore, error) {
	return r.list(ctx, selectColumns+` WHERE household_id = ? ORDER BY due_date, created_at, id`, householdID)
}

func (r *SQLiteRepository) ListUnsynced(ctx context.Context) ([]*models.Chore, error) {
	return r.list(ctx, selectColumns+` WHERE synced = 0 ORDER BY last_modified, id`)
}

func (r *SQLiteRepository) CountUnsynced(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chores WHERE synced = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unsynced chores: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, lastModified time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE chores SET synced = 1 WHERE id = ? AND last_modified = ?`,
		id, models.ToMillis(lastModified))
	if err != nil {
		return false, fmt.Errorf("failed to mark chore %s synced: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark chore %s synced: %w", id, err)
	}
	return n == 1, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chore %s: %w", id, err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]*models.Chore, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select chores: %w", err)
	}
	defer rows.Close()

	var result []*models.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chore row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chore rows: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChore(s scanner) (*models.Chore, error) {
	var (
		c                                models.Chore
		freq                             string
		dueDate, createdAt, lastModified int64
		completedAt                      sql.NullInt64
	)
	err := s.Scan(&c.ID, &c.HouseholdID, &c.Title, &dueDate, &c.AssignedTo, &c.IsCompleted,
		&completedAt, &freq, &c.CreatedBy, &createdAt, &lastModified, &c.Synced)
	if err != nil {
		return nil, err
	}
	c.Frequency = models.Frequency(freq)
	c.DueDate = models.FromMillis(dueDate)
	c.CreatedAt = models.FromMillis(createdAt)
	c.LastModified = models.FromMillis(lastModified)
	if completedAt.Valid {
		t := models.FromMillis(completedAt.Int64)
		c.CompletedAt = &t
	}
	return &c, nil
}
