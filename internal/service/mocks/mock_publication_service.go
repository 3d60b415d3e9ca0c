package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"rpvscraper/internal/model"
	"rpvscraper/internal/repository"
	"rpvscraper/internal/service"
	"rpvscraper/internal/storage"
)

type MockPublicationService struct {
	mock.Mock
}

func (m *MockPublicationService) List(ctx context.Context, filter repository.RecordFilter, limit, offset int) (*service.PublicationListResult, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicationListResult), args.Error(1)
}

func (m *MockPublicationService) Board(ctx context.Context, limit, offset int) (map[string]service.BoardColumn, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]service.BoardColumn), args.Error(1)
}

func (m *MockPublicationService) Get(ctx context.Context, id int64) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockPublicationService) SourceURL(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockPublicationService) Source(ctx context.Context, id int64) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
