package worker

import "context"

// Worker - фоновый процесс с жизненным циклом, управляемым менеджером
type Worker interface {
	// Name возвращает имя воркера для логов
	Name() string

	// Start запускает цикл воркера; блокируется до остановки
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру о завершении
	Stop() error
}
