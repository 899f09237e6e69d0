package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/pkg/errors"
	"github.com/photo-compass/internal/usecase"
)

func heading(v float64) *float64 { return &v }

func photoAt(id string, lat, lon float64, h *float64) domain.PhotoRecord {
	return domain.PhotoRecord{
		ID:        id,
		Path:      "/photos/" + id + ".jpg",
		Latitude:  lat,
		Longitude: lon,
		Heading:   h,
	}
}

func TestSelectPhotos(t *testing.T) {
	t.Run("photo due east is excluded when facing north", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 0}
		records := []domain.PhotoRecord{photoAt("east", 0, 1, heading(270))}

		result, err := usecase.SelectPhotos(vp, records)

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("photo due east is included when facing east", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 90}
		records := []domain.PhotoRecord{photoAt("east", 0, 1, heading(270))}

		result, err := usecase.SelectPhotos(vp, records)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "east", result[0].Photo.ID)
		assert.InDelta(t, 111.2, result[0].Distance, 0.2)
	})

	t.Run("photo exactly on the view direction is always selected", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 0}
		records := []domain.PhotoRecord{photoAt("north", 1, 0, heading(180))}

		result, err := usecase.SelectPhotos(vp, records)

		require.NoError(t, err)
		require.Len(t, result, 1)
	})

	t.Run("photo directly behind is never selected", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 180}
		records := []domain.PhotoRecord{photoAt("north", 1, 0, heading(0))}

		result, err := usecase.SelectPhotos(vp, records)

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("cone edges", func(t *testing.T) {
		// Photo due east: bearing 90
		records := []domain.PhotoRecord{photoAt("east", 0, 1, heading(0))}

		inside, err := usecase.SelectPhotos(domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 60.1}, records)
		require.NoError(t, err)
		assert.Len(t, inside, 1, "29.9 degrees off the view direction is inside the cone")

		outside, err := usecase.SelectPhotos(domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 59.9}, records)
		require.NoError(t, err)
		assert.Empty(t, outside, "30.1 degrees off the view direction is outside the cone")
	})

	t.Run("ordered nearest first", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 90}
		records := []domain.PhotoRecord{
			photoAt("far", 0, 0.45, heading(0)),  // ~50 km
			photoAt("near", 0, 0.09, heading(0)), // ~10 km
		}

		result, err := usecase.SelectPhotos(vp, records)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "near", result[0].Photo.ID)
		assert.Equal(t, "far", result[1].Photo.ID)
		assert.LessOrEqual(t, result[0].Distance, result[1].Distance)
	})

	t.Run("equal distances keep indexing order", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 90}
		records := []domain.PhotoRecord{
			photoAt("first", 0.1, 1, heading(0)),
			photoAt("second", -0.1, 1, heading(0)),
		}

		result, err := usecase.SelectPhotos(vp, records)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "first", result[0].Photo.ID)
		assert.Equal(t, "second", result[1].Photo.ID)
	})

	t.Run("photo without heading is never selected", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 90}
		records := []domain.PhotoRecord{
			photoAt("blind", 0, 1, nil),
			photoAt("sighted", 0, 1, heading(123)),
		}

		result, err := usecase.SelectPhotos(vp, records)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "sighted", result[0].Photo.ID)
	})

	t.Run("empty collection yields empty result", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 51.5, Longitude: -0.12, Rotation: 42}

		result, err := usecase.SelectPhotos(vp, nil)

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 90}
		records := []domain.PhotoRecord{
			photoAt("a", 0, 0.5, heading(0)),
			photoAt("b", 0.2, 0.7, heading(10)),
			photoAt("c", -0.2, 0.3, heading(350)),
		}

		first, err := usecase.SelectPhotos(vp, records)
		require.NoError(t, err)
		second, err := usecase.SelectPhotos(vp, records)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("rotation outside 0-360 is normalized", func(t *testing.T) {
		records := []domain.PhotoRecord{photoAt("east", 0, 1, heading(0))}

		for _, rotation := range []float64{90, 450, -270, 810} {
			vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: rotation}
			result, err := usecase.SelectPhotos(vp, records)
			require.NoError(t, err)
			assert.Len(t, result, 1, "rotation %f", rotation)
		}
	})

	t.Run("NaN viewpoint latitude fails fast", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: math.NaN(), Longitude: 0, Rotation: 0}

		_, err := usecase.SelectPhotos(vp, nil)
		assert.ErrorIs(t, err, errors.ErrInvalidViewpoint)
	})

	t.Run("NaN rotation fails fast", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: math.NaN()}

		_, err := usecase.SelectPhotos(vp, nil)
		assert.ErrorIs(t, err, errors.ErrInvalidViewpoint)
	})

	t.Run("record with NaN latitude fails fast", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 0}
		records := []domain.PhotoRecord{photoAt("bad", math.NaN(), 0, heading(0))}

		_, err := usecase.SelectPhotos(vp, records)
		assert.ErrorIs(t, err, errors.ErrInvalidPhotoRecord)
	})

	t.Run("coincident viewpoint and photo does not error", func(t *testing.T) {
		vp := domain.Viewpoint{Latitude: 41.3851, Longitude: 2.1734, Rotation: 0}
		records := []domain.PhotoRecord{photoAt("here", 41.3851, 2.1734, heading(0))}

		result, err := usecase.SelectPhotos(vp, records)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.InDelta(t, 0, result[0].Distance, 1e-9)
	})
}

func TestSelectionUseCase_GetVisiblePhotos(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := &MockPhotoRepository{}
		mockRepo.On("All", ctx).Return([]domain.PhotoRecord{
			photoAt("east", 0, 1, heading(270)),
		}, nil)

		uc := usecase.NewSelectionUseCase(mockRepo, logger)

		result, err := uc.GetVisiblePhotos(ctx, domain.Viewpoint{Latitude: 0, Longitude: 0, Rotation: 90})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "east", result[0].Photo.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid viewpoint", func(t *testing.T) {
		mockRepo := &MockPhotoRepository{}
		mockRepo.On("All", ctx).Return([]domain.PhotoRecord{}, nil)

		uc := usecase.NewSelectionUseCase(mockRepo, logger)

		_, err := uc.GetVisiblePhotos(ctx, domain.Viewpoint{Latitude: 91, Longitude: 0, Rotation: 0})
		assert.ErrorIs(t, err, errors.ErrInvalidViewpoint)
	})
}
