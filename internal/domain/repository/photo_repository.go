package repository

import (
	"context"

	"github.com/photo-compass/internal/domain"
)

// PhotoRepository - доступ к проиндексированной коллекции фотографий.
// Реализация обязана возвращать снимок коллекции, который не меняется
// после возврата: движок выборки читает его без синхронизации.
type PhotoRepository interface {
	// All возвращает все записи в порядке индексации.
	All(ctx context.Context) ([]domain.PhotoRecord, error)

	// GetByID возвращает запись по идентификатору.
	GetByID(ctx context.Context, id string) (*domain.PhotoRecord, error)

	// Count возвращает число записей.
	Count(ctx context.Context) (int, error)

	// Replace атомарно заменяет коллекцию новым снимком (повторное
	// сканирование директории).
	Replace(ctx context.Context, records []domain.PhotoRecord) error
}
