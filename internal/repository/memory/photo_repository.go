package memory

import (
	"context"
	"sync"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/pkg/errors"
)

// PhotoRepository - in-memory реализация поверх снимка, загруженного
// сканером при старте. Снимок неизменяем; Replace подменяет его целиком,
// поэтому читатели, получившие старый срез, продолжают видеть
// согласованные данные.
type PhotoRepository struct {
	mu      sync.RWMutex
	records []domain.PhotoRecord
	byID    map[string]int
}

func NewPhotoRepository(records []domain.PhotoRecord) *PhotoRepository {
	r := &PhotoRepository{}
	r.replace(records)
	return r
}

func (r *PhotoRepository) All(ctx context.Context) ([]domain.PhotoRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records, nil
}

func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*domain.PhotoRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, errors.ErrPhotoNotFound
	}
	rec := r.records[idx]
	return &rec, nil
}

func (r *PhotoRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *PhotoRepository) Replace(ctx context.Context, records []domain.PhotoRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replace(records)
	return nil
}

func (r *PhotoRepository) replace(records []domain.PhotoRecord) {
	// Копия защищает снимок от мутаций на стороне вызывающего
	snapshot := make([]domain.PhotoRecord, len(records))
	copy(snapshot, records)

	byID := make(map[string]int, len(snapshot))
	for i, rec := range snapshot {
		byID[rec.ID] = i
	}

	r.records = snapshot
	r.byID = byID
}
