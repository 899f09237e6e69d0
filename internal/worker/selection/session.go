package selection

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/pkg/metrics"
)

// Engine - движок выборки; реализуется usecase.SelectionUseCase
type Engine interface {
	GetVisiblePhotos(ctx context.Context, vp domain.Viewpoint) (domain.SelectionResult, error)
}

// Result - результат асинхронной выборки для одной точки обзора
type Result struct {
	Viewpoint domain.Viewpoint
	Selection domain.SelectionResult
	Err       error
}

// Session выполняет выборку асинхронно для одного клиента карты.
// События точки обзора могут приходить быстрее, чем считается выборка;
// сессия гарантирует, что наружу уходит только результат последней
// отправленной точки обзора - устаревшие результаты отбрасываются,
// промежуточные точки обзора пропускаются.
type Session struct {
	engine Engine
	logger *zap.Logger

	gen        uint64
	viewpoints chan submission
	results    chan Result
	done       chan struct{}
	closeOnce  sync.Once
}

type submission struct {
	vp  domain.Viewpoint
	gen uint64
}

func NewSession(engine Engine, logger *zap.Logger) *Session {
	return &Session{
		engine:     engine,
		logger:     logger,
		viewpoints: make(chan submission, 1),
		results:    make(chan Result, 1),
		done:       make(chan struct{}),
	}
}

// Submit передаёт новую точку обзора, не блокируясь: ещё не взятая в
// работу предыдущая точка заменяется.
func (s *Session) Submit(vp domain.Viewpoint) {
	item := submission{vp: vp, gen: atomic.AddUint64(&s.gen, 1)}
	for {
		select {
		case s.viewpoints <- item:
			return
		default:
			// Вытесняем устаревшую необработанную точку обзора
			select {
			case <-s.viewpoints:
			default:
			}
		}
	}
}

// Results - канал готовых результатов; доставляется только актуальный.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Run обрабатывает точки обзора до закрытия сессии или отмены контекста.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case item := <-s.viewpoints:
			sel, err := s.engine.GetVisiblePhotos(ctx, item.vp)

			// Пока считали, пришла более новая точка обзора -
			// этот результат уже никому не нужен
			if atomic.LoadUint64(&s.gen) != item.gen {
				metrics.StaleResultsDropped.Inc()
				s.logger.Debug("Dropping stale selection result",
					zap.Float64("lat", item.vp.Latitude),
					zap.Float64("lon", item.vp.Longitude),
					zap.Float64("rotation", item.vp.Rotation))
				continue
			}

			s.publish(Result{Viewpoint: item.vp, Selection: sel, Err: err})
		}
	}
}

// Close завершает сессию; повторные вызовы безопасны.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// publish кладёт результат, вытесняя недоставленный устаревший.
func (s *Session) publish(res Result) {
	for {
		select {
		case s.results <- res:
			return
		default:
			select {
			case <-s.results:
				metrics.StaleResultsDropped.Inc()
			default:
			}
		}
	}
}
