package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/dbx"
	"github.com/dmitrijs2005/housekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*models.StoredDocument, error) {
	doc := &models.StoredDocument{}
	var raw []byte
	if err := row.Scan(&doc.Path, &doc.Collection, &raw, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	data, err := decode(raw)
	if err != nil {
		return nil, err
	}
	doc.Data = data
	return doc, nil
}

func (r *PostgresRepository) Get(ctx context.Context, path string) (*models.StoredDocument, error) {
	query :=
		`SELECT path, collection, data, updated_at FROM documents
		 WHERE path = $1
		 `

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, path))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) Set(ctx context.Context, doc *models.StoredDocument) error {
	data, err := encode(doc.Data)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO documents (path, collection, data, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (path) DO UPDATE
		 SET collection = EXCLUDED.collection, data = EXCLUDED.data, updated_at = now()
		 RETURNING updated_at
		 `

	if err := r.db.QueryRowContext(ctx, query, doc.Path, doc.Collection, string(data)).Scan(&doc.UpdatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, path string) error {
	query := `DELETE FROM documents WHERE path = $1`

	res, err := r.db.ExecContext(ctx, query, path)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Query(ctx context.Context, collection, field string, value any) ([]*models.StoredDocument, error) {
	want, err := encode(value)
	if err != nil {
		return nil, err
	}

	query :=
		`SELECT path, collection, data, updated_at FROM documents
		 WHERE collection = $1 AND data -> $2 = $3::jsonb
		 ORDER BY path
		 `

	rows, err := r.db.QueryContext(ctx, query, collection, field, string(want))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.StoredDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Merge(ctx context.Context, path string, fields models.Document) (*models.StoredDocument, error) {
	patch, err := encode(fields)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE documents SET data = data || $2::jsonb, updated_at = now()
		 WHERE path = $1
		 RETURNING path, collection, data, updated_at
		 `

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, path, string(patch)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}
