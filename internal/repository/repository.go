package repository

import (
	"context"

	"github.com/nkiryanov/bankdemo/internal/models"
)

// Bank account repository interface
type AccountRepo interface {
	// Save account
	// Zero ID inserts new record and assigns fresh id; two saves never get the same id
	// Non zero ID updates record, must return apperrors.ErrAccountNotFound if it not exists
	Save(ctx context.Context, account models.BankAccount) (models.BankAccount, error)

	// Get account by id
	// If account not found must return apperrors.ErrAccountNotFound
	FindByID(ctx context.Context, id int64) (models.BankAccount, error)

	// All accounts in insertion order
	FindAll(ctx context.Context) ([]models.BankAccount, error)
}

// Document metadata repository interface
type DocumentRepo interface {
	// Same semantic as AccountRepo.Save, but apperrors.ErrDocumentNotFound
	Save(ctx context.Context, doc models.DocumentFile) (models.DocumentFile, error)

	// If document not found must return apperrors.ErrDocumentNotFound
	FindByID(ctx context.Context, id int64) (models.DocumentFile, error)

	// All documents in insertion order
	FindAll(ctx context.Context) ([]models.DocumentFile, error)
}

// Storage gives access to every repository and runs them in one unit of work
// Any backend failure returned by repositories matches apperrors.ErrStorage
type Storage interface {
	Account() AccountRepo
	Document() DocumentRepo

	// Run fn in transaction
	// Commit if fn returns nil, rollback otherwise
	InTx(ctx context.Context, fn func(Storage) error) error

	// Check storage is reachable
	Ping(ctx context.Context) error
}
