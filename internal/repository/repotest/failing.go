// Package repotest holds storage doubles shared by service and handler tests
package repotest

import (
	"context"
	"fmt"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/models"
	"github.com/nkiryanov/bankdemo/internal/repository"
)

// Storage that fails every operation with error matching apperrors.ErrStorage
type FailingStorage struct {
	Err error
}

func NewFailingStorage() *FailingStorage {
	return &FailingStorage{Err: fmt.Errorf("%w: db error: connection refused", apperrors.ErrStorage)}
}

func (s *FailingStorage) Account() repository.AccountRepo   { return failingAccounts{err: s.Err} }
func (s *FailingStorage) Document() repository.DocumentRepo { return failingDocuments{err: s.Err} }
func (s *FailingStorage) Ping(context.Context) error         { return s.Err }

func (s *FailingStorage) InTx(ctx context.Context, fn func(repository.Storage) error) error {
	return fn(s)
}

type failingAccounts struct{ err error }

func (r failingAccounts) Save(context.Context, models.BankAccount) (models.BankAccount, error) {
	return models.BankAccount{}, r.err
}

func (r failingAccounts) FindByID(context.Context, int64) (models.BankAccount, error) {
	return models.BankAccount{}, r.err
}

func (r failingAccounts) FindAll(context.Context) ([]models.BankAccount, error) {
	return nil, r.err
}

type failingDocuments struct{ err error }

func (r failingDocuments) Save(context.Context, models.DocumentFile) (models.DocumentFile, error) {
	return models.DocumentFile{}, r.err
}

func (r failingDocuments) FindByID(context.Context, int64) (models.DocumentFile, error) {
	return models.DocumentFile{}, r.err
}

func (r failingDocuments) FindAll(context.Context) ([]models.DocumentFile, error) {
	return nil, r.err
}

// Wraps storage and fails on commit, after fn already succeeded
type CommitFailStorage struct {
	repository.Storage
	Err error
}

func (s *CommitFailStorage) InTx(ctx context.Context, fn func(repository.Storage) error) error {
	if err := fn(s.Storage); err != nil {
		return err
	}
	return s.Err
}
