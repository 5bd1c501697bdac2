package document

import (
	"context"

	"github.com/nkiryanov/bankdemo/internal/repository"
)

type DocumentService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *DocumentService {
	return &DocumentService{
		storage: storage,
	}
}

func (s *DocumentService) Save(ctx context.Context, req SaveRequest) (Response, error) {
	var resp Response

	err := s.storage.InTx(ctx, func(storage repository.Storage) error {
		saved, err := storage.Document().Save(ctx, ToEntity(req))
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

func (s *DocumentService) List(ctx context.Context) ([]Response, error) {
	docs, err := s.storage.Document().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]Response, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, ToResponse(d))
	}
	return resp, nil
}

func (s *DocumentService) Get(ctx context.Context, id int64) (Response, error) {
	d, err := s.storage.Document().FindByID(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return ToResponse(d), nil
}
