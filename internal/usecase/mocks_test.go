package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/photo-compass/internal/domain"
)

// MockPhotoRepository - testify-мок репозитория фотографий
type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) All(ctx context.Context) ([]domain.PhotoRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PhotoRecord), args.Error(1)
}

func (m *MockPhotoRepository) GetByID(ctx context.Context, id string) (*domain.PhotoRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PhotoRecord), args.Error(1)
}

func (m *MockPhotoRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPhotoRepository) Replace(ctx context.Context, records []domain.PhotoRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}
