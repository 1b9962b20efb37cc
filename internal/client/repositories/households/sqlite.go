package households

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, h *models.Household) error {
	members := h.MemberIDs
	if members == nil {
		members = []string{}
	}
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("failed to encode members of household %s: %w", h.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO households (id, name, invite_code, created_by, member_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			invite_code = excluded.invite_code,
			created_by = excluded.created_by,
			member_ids = excluded.member_ids,
			created_at = excluded.created_at
	`, h.ID, h.Name, h.InviteCode, h.CreatedBy, string(raw), models.ToMillis(h.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert household %s: %w", h.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Household, error) {
	var (
		h         models.Household
		members   string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, invite_code, created_by, member_ids, created_at
		FROM households WHERE id = ?`, id).
		Scan(&h.ID, &h.Name, &h.InviteCode, &h.CreatedBy, &members, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(members), &h.MemberIDs); err != nil {
		return nil, fmt.Errorf("failed to decode members of household %s: %w", id, err)
	}
	h.CreatedAt = models.FromMillis(createdAt)
	return &h, nil
}

func (r *SQLiteRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM households WHERE invite_code = ?)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invite code: %w", err)
	}
	return exists, nil
}
