package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// QueryLimit is the maximum number of rows the read API serves.
const QueryLimit = 10

// Repository provides the write side of advice persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository opens the advice database at the given path.
func NewRepository(path string) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Repository{db: db}, nil
}

// DB returns the underlying GORM database instance.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// Close closes the database connection.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureSchema guarantees the advises table exists and carries the columns
// the store and query paths need. Both statements are idempotent and safe
// under concurrent process starts: the column add is attempted outright and
// a duplicate-column error is treated as success, so there is no
// check-then-add race. Existing columns and rows are never touched.
func (r *Repository) EnsureSchema() error {
	createStmt := `CREATE TABLE IF NOT EXISTS advises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		advice_action TEXT NOT NULL,
		advice_strength TEXT NOT NULL,
		reason TEXT,
		predicted_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL DEFAULT 0
	)`
	if err := r.db.Exec(createStmt).Error; err != nil {
		return fmt.Errorf("failed to create advises table: %w", err)
	}

	err := r.db.Exec(`ALTER TABLE advises ADD COLUMN price REAL`).Error
	if err != nil && !isDuplicateColumn(err) {
		return fmt.Errorf("failed to add price column: %w", err)
	}
	return nil
}

// isDuplicateColumn reports whether an ALTER TABLE failed only because the
// column is already there, i.e. the migration was applied by us or by a
// concurrent process.
func isDuplicateColumn(err error) bool {
	return strings.Contains(err.Error(), "duplicate column name")
}

// InsertAdvice writes one validated advice row. The identity and created_at
// timestamp are assigned here, at write time.
func (r *Repository) InsertAdvice(ctx context.Context, advice *Advice) error {
	return r.db.WithContext(ctx).Create(advice).Error
}

// ReadStore serves the query side. It deliberately shares nothing with the
// write path: each query opens a short-lived read-only connection to the
// database file and closes it when done.
type ReadStore struct {
	path string
}

// NewReadStore creates a read store over the given database file.
func NewReadStore(path string) *ReadStore {
	return &ReadStore{path: path}
}

// LastAdvises returns at most limit rows, newest first: predicted_at
// descending with the row id as a stable tiebreak. An empty table yields an
// empty slice, not an error. The read never mutates state.
func (s *ReadStore) LastAdvises(ctx context.Context, limit int) ([]Advice, error) {
	db, err := gorm.Open(sqlite.Open("file:"+s.path+"?mode=ro"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database read-only: %w", err)
	}
	defer func() {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
	}()

	advises := []Advice{}
	err = db.WithContext(ctx).
		Order("predicted_at DESC, id DESC").
		Limit(limit).
		Find(&advises).Error
	if err != nil {
		return nil, err
	}
	return advises, nil
}
