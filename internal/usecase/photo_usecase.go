package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/domain/repository"
	"github.com/photo-compass/internal/pkg/errors"
	"github.com/photo-compass/internal/pkg/metrics"
	"github.com/photo-compass/internal/usecase/dto"
)

// DirectoryScanner - поставщик записей из директории с фотографиями.
// Реализуется exifscan.Scanner.
type DirectoryScanner interface {
	Scan(ctx context.Context, dir string) ([]domain.PhotoRecord, error)
}

// PhotoUseCase - операции над проиндексированной коллекцией: листинг,
// доступ к отдельной записи и повторное сканирование директории.
type PhotoUseCase struct {
	photoRepo repository.PhotoRepository
	scanner   DirectoryScanner
	logger    *zap.Logger
	photosDir string
}

func NewPhotoUseCase(
	photoRepo repository.PhotoRepository,
	scanner DirectoryScanner,
	logger *zap.Logger,
	photosDir string,
) *PhotoUseCase {
	return &PhotoUseCase{
		photoRepo: photoRepo,
		scanner:   scanner,
		logger:    logger,
		photosDir: photosDir,
	}
}

// ListPhotos возвращает полный индекс в порядке сканирования.
func (uc *PhotoUseCase) ListPhotos(ctx context.Context) (dto.PhotoListResponse, error) {
	records, err := uc.photoRepo.All(ctx)
	if err != nil {
		uc.logger.Error("Failed to list photos", zap.Error(err))
		return dto.PhotoListResponse{}, err
	}
	return dto.ConvertPhotoList(records), nil
}

// GetPhoto возвращает запись по идентификатору.
func (uc *PhotoUseCase) GetPhoto(ctx context.Context, id string) (*domain.PhotoRecord, error) {
	return uc.photoRepo.GetByID(ctx, id)
}

// Rescan повторно сканирует директорию и атомарно подменяет коллекцию.
// Выборки, начатые до подмены, дорабатывают на старом снимке. Пустой
// результат сканирования коллекцию не подменяет: прежний снимок
// сохраняется, а вызывающему возвращается ErrNoGeotaggedPhotos.
func (uc *PhotoUseCase) Rescan(ctx context.Context) (int, error) {
	start := time.Now()

	records, err := uc.scanner.Scan(ctx, uc.photosDir)
	if err != nil {
		uc.logger.Error("Rescan failed", zap.String("dir", uc.photosDir), zap.Error(err))
		return 0, err
	}

	if len(records) == 0 {
		uc.logger.Warn("Rescan found no geotagged photos, keeping previous snapshot",
			zap.String("dir", uc.photosDir))
		return 0, errors.ErrNoGeotaggedPhotos
	}

	if err := uc.photoRepo.Replace(ctx, records); err != nil {
		uc.logger.Error("Failed to replace photo snapshot", zap.Error(err))
		return 0, err
	}

	metrics.ScanDuration.Observe(time.Since(start).Seconds())

	uc.logger.Info("Photo collection rescanned",
		zap.String("dir", uc.photosDir),
		zap.Int("indexed", len(records)),
		zap.Duration("took", time.Since(start)))

	return len(records), nil
}
