package account

import (
	"context"

	"github.com/nkiryanov/bankdemo/internal/repository"
)

type AccountService struct {
	// Repository to access long term data
	storage repository.Storage
}

func NewService(storage repository.Storage) *AccountService {
	return &AccountService{
		storage: storage,
	}
}

// Open new account
// Response returned only when account saved and transaction committed
func (s *AccountService) Open(ctx context.Context, req OpenRequest) (Response, error) {
	var resp Response

	err := s.storage.InTx(ctx, func(storage repository.Storage) error {
		saved, err := storage.Account().Save(ctx, ToEntity(req))
		if err != nil {
			return err
		}
		resp = ToResponse(saved)
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	return resp, nil
}

func (s *AccountService) List(ctx context.Context) ([]Response, error) {
	accounts, err := s.storage.Account().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]Response, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, ToResponse(a))
	}
	return resp, nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (Response, error) {
	a, err := s.storage.Account().FindByID(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(a), nil
}
