package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/domain/repository"
	"github.com/photo-compass/internal/pkg/errors"
	"github.com/photo-compass/internal/pkg/geo"
	"github.com/photo-compass/internal/pkg/metrics"
)

// ConeHalfAngle - половина угла конуса видимости в градусах. Фотография
// отбирается, когда азимут на неё отклоняется от направления взгляда
// не более чем на это значение.
const ConeHalfAngle = 30.0

// SelectPhotos - чистая функция выборки: по точке обзора и коллекции записей
// возвращает фотографии, попавшие в конус видимости, отсортированные по
// возрастанию расстояния. Записи без направления съёмки в выборку не попадают.
// Результат каждый раз вычисляется заново, состояния между вызовами нет.
//
// Невалидная точка обзора или запись с испорченными координатами - нарушение
// контракта вызывающей стороны, вызов завершается ошибкой целиком.
func SelectPhotos(vp domain.Viewpoint, records []domain.PhotoRecord) (domain.SelectionResult, error) {
	if !geo.ValidateCoordinates(vp.Latitude, vp.Longitude) || math.IsNaN(vp.Rotation) {
		return nil, errors.ErrInvalidViewpoint
	}

	result := make(domain.SelectionResult, 0, len(records))
	for _, rec := range records {
		if !geo.ValidateCoordinates(rec.Latitude, rec.Longitude) {
			return nil, errors.ErrInvalidPhotoRecord.WithDetails(map[string]interface{}{
				"photo_id": rec.ID,
				"path":     rec.Path,
			})
		}

		// Без направления съёмки запись неотличима от смотрящей в любую
		// сторону; направление по умолчанию не угадываем.
		if !rec.HasHeading() {
			continue
		}

		bearing := geo.InitialBearing(vp.Latitude, vp.Longitude, rec.Latitude, rec.Longitude)
		if math.Abs(geo.AngleDifference(vp.Rotation, bearing)) > ConeHalfAngle {
			continue
		}

		result = append(result, domain.SelectedPhoto{
			Distance: geo.HaversineDistance(vp.Latitude, vp.Longitude, rec.Latitude, rec.Longitude),
			Photo:    rec,
		})
	}

	// Стабильная сортировка сохраняет порядок индексации при равных
	// расстояниях, выборка детерминирована.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})

	return result, nil
}

// SelectionUseCase применяет движок выборки к текущему снимку коллекции.
type SelectionUseCase struct {
	photoRepo repository.PhotoRepository
	logger    *zap.Logger
}

func NewSelectionUseCase(photoRepo repository.PhotoRepository, logger *zap.Logger) *SelectionUseCase {
	return &SelectionUseCase{
		photoRepo: photoRepo,
		logger:    logger,
	}
}

// GetVisiblePhotos возвращает упорядоченную выборку для точки обзора.
func (uc *SelectionUseCase) GetVisiblePhotos(ctx context.Context, vp domain.Viewpoint) (domain.SelectionResult, error) {
	records, err := uc.photoRepo.All(ctx)
	if err != nil {
		uc.logger.Error("Failed to load photo snapshot", zap.Error(err))
		return nil, err
	}

	start := time.Now()
	result, err := SelectPhotos(vp, records)
	if err != nil {
		uc.logger.Error("Selection failed",
			zap.Float64("lat", vp.Latitude),
			zap.Float64("lon", vp.Longitude),
			zap.Float64("rotation", vp.Rotation),
			zap.Error(err))
		return nil, err
	}

	metrics.SelectionDuration.Observe(time.Since(start).Seconds())
	metrics.SelectedPhotos.Observe(float64(len(result)))

	uc.logger.Debug("Viewpoint selection computed",
		zap.Float64("lat", vp.Latitude),
		zap.Float64("lon", vp.Longitude),
		zap.Float64("rotation", vp.Rotation),
		zap.Int("candidates", len(records)),
		zap.Int("selected", len(result)))

	return result, nil
}
