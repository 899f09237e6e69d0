package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/photo-compass/internal/pkg/errors"
	"github.com/photo-compass/internal/pkg/utils"
	"github.com/photo-compass/internal/pkg/validator"
	"github.com/photo-compass/internal/usecase"
	"github.com/photo-compass/internal/usecase/dto"
)

// SelectionHandler - обработчик запросов выборки по точке обзора
type SelectionHandler struct {
	selectionUC *usecase.SelectionUseCase
	logger      *zap.Logger
}

func NewSelectionHandler(selectionUC *usecase.SelectionUseCase, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		selectionUC: selectionUC,
		logger:      logger,
	}
}

// GetSelection - выборка фотографий, видимых из точки обзора.
// GET /api/v1/selection?lat=41.38&lon=2.17&rotation=45
func (h *SelectionHandler) GetSelection(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"param": "lat",
		}))
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"param": "lon",
		}))
	}
	rotation, err := strconv.ParseFloat(c.Query("rotation", "0"), 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"param": "rotation",
		}))
	}

	req := dto.SelectionRequest{Lat: lat, Lon: lon, Rotation: rotation}
	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidViewpoint)
	}

	start := time.Now()
	result, err := h.selectionUC.GetVisiblePhotos(c.Context(), req.Viewpoint())
	if err != nil {
		h.logger.Error("Selection request failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	resp := dto.ConvertSelectionResult(req.Viewpoint(), result)
	return utils.SendSuccess(c, resp, &utils.Meta{
		Total:    resp.Total,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000.0,
	})
}
