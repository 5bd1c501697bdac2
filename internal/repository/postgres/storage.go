package postgres

import (
	"context"
	"fmt"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/repository"
)

type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) repository.Storage {
	return &Storage{db: db}
}

func (s *Storage) Account() repository.AccountRepo {
	return &AccountRepo{DB: s.db}
}

func (s *Storage) Document() repository.DocumentRepo {
	return &DocumentRepo{DB: s.db}
}

func (s *Storage) InTx(ctx context.Context, fn func(repository.Storage) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: db tx error: %w", apperrors.ErrStorage, err)
	}

	// No-op after commit. Still runs when fn panics
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStorage(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: db commit error: %w", apperrors.ErrStorage, err)
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "SELECT 1"); err != nil {
		return dbError(err)
	}
	return nil
}
