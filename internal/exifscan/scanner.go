package exifscan

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/pkg/metrics"
)

// Scanner рекурсивно обходит директорию и строит коллекцию геотегированных
// фотографий. Проблемные файлы пропускаются с warn-логом, обход продолжается.
type Scanner struct {
	logger *zap.Logger
}

func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// Scan возвращает записи в порядке обхода директории. Каждой записи
// присваивается uuid, чтобы HTTP-слой мог отдавать изображение, не
// раскрывая файловую систему.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]domain.PhotoRecord, error) {
	var records []domain.PhotoRecord

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("Failed to access path, skipping", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			// Позволяет прервать длинный обход по контексту
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		}
		if !isJPEG(path) {
			return nil
		}

		rec, err := Extract(path)
		if err != nil {
			s.logger.Warn("Skipping photo without usable GPS metadata",
				zap.String("path", path),
				zap.Error(err))
			metrics.ScanSkips.Inc()
			return nil
		}

		rec.ID = uuid.NewString()
		records = append(records, *rec)

		s.logger.Debug("Indexed photo",
			zap.String("path", path),
			zap.Float64("lat", rec.Latitude),
			zap.Float64("lon", rec.Longitude),
			zap.Bool("has_heading", rec.HasHeading()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PhotosIndexed.Set(float64(len(records)))

	s.logger.Info("Directory scan finished",
		zap.String("dir", dir),
		zap.Int("indexed", len(records)))

	return records, nil
}

// isJPEG проверяет расширение файла.
func isJPEG(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}
