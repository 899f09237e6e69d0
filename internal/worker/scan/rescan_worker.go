package scan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/photo-compass/internal/worker"
)

// Rescanner - операция повторного сканирования; реализуется PhotoUseCase
type Rescanner interface {
	Rescan(ctx context.Context) (int, error)
}

// RescanWorker периодически пересканирует директорию с фотографиями,
// чтобы подхватывать добавленные и удалённые файлы без перезапуска.
type RescanWorker struct {
	*worker.BaseWorker
	rescanner Rescanner
	interval  time.Duration
}

func NewRescanWorker(rescanner Rescanner, interval time.Duration, logger *zap.Logger) *RescanWorker {
	return &RescanWorker{
		BaseWorker: worker.NewBaseWorker("photo-rescan", logger),
		rescanner:  rescanner,
		interval:   interval,
	}
}

// Start запускает цикл пересканирования. Ошибка одного прохода
// логируется и не останавливает воркер.
func (w *RescanWorker) Start(ctx context.Context) error {
	w.Logger().Info("Rescan worker started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Rescan worker context cancelled")
			return nil
		case <-w.StopChan():
			w.Logger().Info("Rescan worker stopped")
			return nil
		case <-ticker.C:
			if _, err := w.rescanner.Rescan(ctx); err != nil {
				w.Logger().Error("Periodic rescan failed", zap.Error(err))
			}
		}
	}
}
