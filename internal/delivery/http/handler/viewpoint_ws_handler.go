package handler

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/pkg/metrics"
	"github.com/photo-compass/internal/usecase/dto"
	"github.com/photo-compass/internal/worker/selection"
)

const wsPingInterval = 30 * time.Second

// viewpointMessage - событие карты: pan, zoom-end, rotate-end или map-ready
type viewpointMessage struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Rotation float64 `json:"rotation"`
}

type wsError struct {
	Error string `json:"error"`
}

// ViewpointWSHandler возвращает обработчик WebSocket-канала точек обзора.
// Клиент шлёт viewpointMessage на каждое изменение карты; в ответ приходит
// упорядоченная выборка для последней отправленной точки обзора. Выборка
// считается вне цикла чтения, устаревшие результаты не доставляются.
func ViewpointWSHandler(engine selection.Engine, logger *zap.Logger) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		logger.Info("Viewpoint channel connected", zap.String("remote", remoteAddr))
		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		session := selection.NewSession(engine, logger)
		defer session.Close()
		go session.Run(ctx)

		// Последовательные записи в соединение из нескольких горутин
		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		done := make(chan struct{})

		// Доставка результатов и keep-alive
		go func() {
			ticker := time.NewTicker(wsPingInterval)
			defer ticker.Stop()
			for {
				select {
				case res := <-session.Results():
					if res.Err != nil {
						_ = writeJSON(wsError{Error: res.Err.Error()})
						continue
					}
					_ = writeJSON(dto.ConvertSelectionResult(res.Viewpoint, res.Selection))
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// Цикл чтения событий карты
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m viewpointMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(wsError{Error: "invalid JSON"})
				continue
			}

			session.Submit(domain.Viewpoint{
				Latitude:  m.Lat,
				Longitude: m.Lon,
				Rotation:  m.Rotation,
			})
		}

		close(done)
		logger.Info("Viewpoint channel disconnected", zap.String("remote", remoteAddr))
	}
}
