package repotest

import (
	"context"
	"sync"

	"github.com/nkiryanov/bankdemo/internal/models"
	"github.com/nkiryanov/bankdemo/internal/repository"
)

// Wraps storage and records how many writes each InTx call made
// Memory store can't undo a write, so use cases must stay at one write per transaction
type CountingStorage struct {
	repository.Storage
	log *writeLog
}

type writeLog struct {
	mu      sync.Mutex
	current int
	perTx   []int
}

func (l *writeLog) write() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current++
}

func NewCountingStorage(s repository.Storage) *CountingStorage {
	return &CountingStorage{Storage: s, log: &writeLog{}}
}

// Writes done by every finished InTx call, in call order
func (s *CountingStorage) WritesPerTx() []int {
	s.log.mu.Lock()
	defer s.log.mu.Unlock()
	return append([]int(nil), s.log.perTx...)
}

func (s *CountingStorage) Account() repository.AccountRepo {
	return countingAccounts{AccountRepo: s.Storage.Account(), log: s.log}
}

func (s *CountingStorage) Document() repository.DocumentRepo {
	return countingDocuments{DocumentRepo: s.Storage.Document(), log: s.log}
}

// Calls must not be concurrent, counts would mix
func (s *CountingStorage) InTx(ctx context.Context, fn func(repository.Storage) error) error {
	s.log.mu.Lock()
	s.log.current = 0
	s.log.mu.Unlock()

	err := s.Storage.InTx(ctx, func(tx repository.Storage) error {
		return fn(&CountingStorage{Storage: tx, log: s.log})
	})

	s.log.mu.Lock()
	s.log.perTx = append(s.log.perTx, s.log.current)
	s.log.mu.Unlock()

	return err
}

type countingAccounts struct {
	repository.AccountRepo
	log *writeLog
}

func (r countingAccounts) Save(ctx context.Context, a models.BankAccount) (models.BankAccount, error) {
	r.log.write()
	return r.AccountRepo.Save(ctx, a)
}

type countingDocuments struct {
	repository.DocumentRepo
	log *writeLog
}

func (r countingDocuments) Save(ctx context.Context, d models.DocumentFile) (models.DocumentFile, error) {
	r.log.write()
	return r.DocumentRepo.Save(ctx, d)
}
