package memory

import (
	"context"
	"sync"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/models"
	"github.com/nkiryanov/bankdemo/internal/repository"
)

// Store keeps every bounded context in process memory
// Ids are assigned from per context counters starting at 1 and never reused
type Store struct {
	mu sync.RWMutex

	accounts     map[int64]models.BankAccount
	accountOrder []int64
	lastAccount  int64

	documents     map[int64]models.DocumentFile
	documentOrder []int64
	lastDocument  int64
}

func New() *Store {
	return &Store{
		accounts:  make(map[int64]models.BankAccount),
		documents: make(map[int64]models.DocumentFile),
	}
}

func (s *Store) Account() repository.AccountRepo {
	return &AccountRepo{s: s}
}

func (s *Store) Document() repository.DocumentRepo {
	return &DocumentRepo{s: s}
}

// Every repository call is atomic on its own, so fn runs against the store directly
// Writes done before fn failed are not undone, so callers keep to one write per transaction
func (s *Store) InTx(ctx context.Context, fn func(repository.Storage) error) error {
	return fn(s)
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

type AccountRepo struct {
	s *Store
}

func (r *AccountRepo) Save(ctx context.Context, a models.BankAccount) (models.BankAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a.ID == 0 {
		r.s.lastAccount++
		a.ID = r.s.lastAccount
		r.s.accountOrder = append(r.s.accountOrder, a.ID)
	} else if _, ok := r.s.accounts[a.ID]; !ok {
		return models.BankAccount{}, apperrors.ErrAccountNotFound
	}

	r.s.accounts[a.ID] = a
	return a, nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id int64) (models.BankAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return models.BankAccount{}, apperrors.ErrAccountNotFound
	}
	return a, nil
}

func (r *AccountRepo) FindAll(ctx context.Context) ([]models.BankAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	accounts := make([]models.BankAccount, 0, len(r.s.accountOrder))
	for _, id := range r.s.accountOrder {
		accounts = append(accounts, r.s.accounts[id])
	}
	return accounts, nil
}

type DocumentRepo struct {
	s *Store
}

func (r *DocumentRepo) Save(ctx context.Context, d models.DocumentFile) (models.DocumentFile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if d.ID == 0 {
		r.s.lastDocument++
		d.ID = r.s.lastDocument
		r.s.documentOrder = append(r.s.documentOrder, d.ID)
	} else if _, ok := r.s.documents[d.ID]; !ok {
		return models.DocumentFile{}, apperrors.ErrDocumentNotFound
	}

	r.s.documents[d.ID] = d
	return d, nil
}

func (r *DocumentRepo) FindByID(ctx context.Context, id int64) (models.DocumentFile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.documents[id]
	if !ok {
		return models.DocumentFile{}, apperrors.ErrDocumentNotFound
	}
	return d, nil
}

func (r *DocumentRepo) FindAll(ctx context.Context) ([]models.DocumentFile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	docs := make([]models.DocumentFile, 0, len(r.s.documentOrder))
	for _, id := range r.s.documentOrder {
		docs = append(docs, r.s.documents[id])
	}
	return docs, nil
}
