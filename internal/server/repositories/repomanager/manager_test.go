package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/housekeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return db, mock
}

func TestManagersImplementInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var _ RepositoryManager = NewPostgresRepositoryManagerWithDB(db)
	var _ RepositoryManager = NewMemoryRepositoryManager()
}

func TestPostgresFactories(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManagerWithDB(db)
	assert.NotNil(t, m.Accounts())
	assert.NotNil(t, m.Documents())
}

func TestRunMigrations(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()

	var got *sql.DB
	gooseUp = func(ctx context.Context, d *sql.DB) error {
		got = d
		return nil
	}
	m := NewPostgresRepositoryManagerWithDB(db)
	require.NoError(t, m.RunMigrations(context.Background()))
	assert.Same(t, db, got)

	gooseUp = func(ctx context.Context, d *sql.DB) error { return errors.New("boom") }
	require.EqualError(t, m.RunMigrations(context.Background()), "boom")
}

func TestPostgresWithTx(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db, mock := newDB(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`^DELETE\s+FROM\s+documents`).WithArgs("users/u1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		m := NewPostgresRepositoryManagerWithDB(db)
		err := m.WithTx(context.Background(), func(ctx context.Context, tx Repositories) error {
			return tx.Documents.Delete(ctx, "users/u1")
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		db, mock := newDB(t)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		m := NewPostgresRepositoryManagerWithDB(db)
		err := m.WithTx(context.Background(), func(ctx context.Context, tx Repositories) error {
			return errors.New("nope")
		})
		require.EqualError(t, err, "nope")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemoryManager(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()
	require.NoError(t, m.RunMigrations(ctx))

	err := m.WithTx(ctx, func(ctx context.Context, tx Repositories) error {
		return tx.Documents.Set(ctx, &models.StoredDocument{Path: "users/u1", Collection: "users", Data: models.Document{"id": "u1"}})
	})
	require.NoError(t, err)

	got, err := m.Documents().Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.Data.String("id"))
	require.NoError(t, m.Close())
}
