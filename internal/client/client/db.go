package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/housekeeper/internal/client/migrations"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/chores"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/deletions"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/households"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/notes"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/rejections"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/users"

	_ "modernc.org/sqlite"
)

// Repositories is the local store: one SQLite handle and the repositories
// built on it. It is created once per process and passed to whoever needs it.
type Repositories struct {
	DB         *sql.DB
	Chores     chores.Repository
	Notes      notes.Repository
	Households households.Repository
	Users      users.Repository
	Deletions  deletions.Repository
	Rejections rejections.Repository
	Metadata   metadata.Repository
}

// NewRepositories wires repositories over an already migrated database.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Chores:     chores.NewSQLiteRepository(db),
		Notes:      notes.NewSQLiteRepository(db),
		Households: households.NewSQLiteRepository(db),
		Users:      users.NewSQLiteRepository(db),
		Deletions:  deletions.NewSQLiteRepository(db),
		Rejections: rejections.NewSQLiteRepository(db),
		Metadata:   metadata.NewSQLiteRepository(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies the embedded schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db)
}

// OpenDB opens the SQLite file at dsn with a single connection, so
// statements never contend for the write lock, and applies migrations.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA journal_mode = WAL`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// InitDatabase opens the local store at dsn.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := OpenDB(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewRepositories(db), nil
}
