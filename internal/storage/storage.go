package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-api/internal/config"
)

type Storage struct {
	DB     *sql.DB
	exec   bob.DB
	Reader *Reader
}

// NewStorage opens the Postgres database described by env.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.Postgres.URL())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	return New(db), nil
}

// New wraps an already opened database.
func New(db *sql.DB) *Storage {
	exec := bob.NewDB(db)
	return &Storage{
		DB:     db,
		exec:   exec,
		Reader: NewReader(exec),
	}
}

// Write begins a database transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
