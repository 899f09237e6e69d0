package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/pkg/errors"
	"github.com/photo-compass/internal/usecase"
)

type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Scan(ctx context.Context, dir string) ([]domain.PhotoRecord, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PhotoRecord), args.Error(1)
}

func TestPhotoUseCase_ListPhotos(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockPhotoRepository{}
	mockRepo.On("All", ctx).Return([]domain.PhotoRecord{
		photoAt("a", 41.38, 2.17, heading(90)),
		photoAt("b", 48.85, 2.35, nil),
	}, nil)

	uc := usecase.NewPhotoUseCase(mockRepo, &MockScanner{}, zap.NewNop(), "/photos")

	resp, err := uc.ListPhotos(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "a", resp.Photos[0].ID)
	assert.Equal(t, "/api/v1/photos/a/image", resp.Photos[0].ImageURL)
	assert.Nil(t, resp.Photos[1].Heading)
	mockRepo.AssertExpectations(t)
}

func TestPhotoUseCase_GetPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rec := photoAt("a", 41.38, 2.17, heading(90))
		mockRepo := &MockPhotoRepository{}
		mockRepo.On("GetByID", ctx, "a").Return(&rec, nil)

		uc := usecase.NewPhotoUseCase(mockRepo, &MockScanner{}, zap.NewNop(), "/photos")

		got, err := uc.GetPhoto(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "/photos/a.jpg", got.Path)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := &MockPhotoRepository{}
		mockRepo.On("GetByID", ctx, "nope").Return(nil, errors.ErrPhotoNotFound)

		uc := usecase.NewPhotoUseCase(mockRepo, &MockScanner{}, zap.NewNop(), "/photos")

		_, err := uc.GetPhoto(ctx, "nope")
		assert.ErrorIs(t, err, errors.ErrPhotoNotFound)
	})
}

func TestPhotoUseCase_Rescan(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces snapshot with scan result", func(t *testing.T) {
		records := []domain.PhotoRecord{photoAt("fresh", 0, 0, heading(0))}

		mockScanner := &MockScanner{}
		mockScanner.On("Scan", ctx, "/photos").Return(records, nil)

		mockRepo := &MockPhotoRepository{}
		mockRepo.On("Replace", ctx, records).Return(nil)

		uc := usecase.NewPhotoUseCase(mockRepo, mockScanner, zap.NewNop(), "/photos")

		n, err := uc.Rescan(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		mockScanner.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty scan result keeps previous snapshot", func(t *testing.T) {
		mockScanner := &MockScanner{}
		mockScanner.On("Scan", ctx, "/photos").Return([]domain.PhotoRecord{}, nil)

		mockRepo := &MockPhotoRepository{}

		uc := usecase.NewPhotoUseCase(mockRepo, mockScanner, zap.NewNop(), "/photos")

		_, err := uc.Rescan(ctx)
		assert.ErrorIs(t, err, errors.ErrNoGeotaggedPhotos)
		mockRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("scan failure leaves snapshot untouched", func(t *testing.T) {
		mockScanner := &MockScanner{}
		mockScanner.On("Scan", ctx, "/photos").Return(nil, assert.AnError)

		mockRepo := &MockPhotoRepository{}

		uc := usecase.NewPhotoUseCase(mockRepo, mockScanner, zap.NewNop(), "/photos")

		_, err := uc.Rescan(ctx)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})
}
