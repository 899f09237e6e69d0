package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/photo-compass/internal/pkg/errors"
	"github.com/photo-compass/internal/pkg/utils"
	"github.com/photo-compass/internal/usecase"
)

// PhotoHandler - обработчик индекса фотографий
type PhotoHandler struct {
	photoUC *usecase.PhotoUseCase
	logger  *zap.Logger
}

func NewPhotoHandler(photoUC *usecase.PhotoUseCase, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoUC: photoUC,
		logger:  logger,
	}
}

// ListPhotos - полный индекс геотегированных фотографий.
// GET /api/v1/photos
func (h *PhotoHandler) ListPhotos(c *fiber.Ctx) error {
	resp, err := h.photoUC.ListPhotos(c.Context())
	if err != nil {
		h.logger.Error("Failed to list photos", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Total: resp.Total})
}

// GetPhotoImage - отдаёт файл изображения по идентификатору записи.
// Файловый путь клиенту не виден, обращение только по uuid.
// GET /api/v1/photos/:id/image
func (h *PhotoHandler) GetPhotoImage(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	rec, err := h.photoUC.GetPhoto(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := c.SendFile(rec.Path); err != nil {
		h.logger.Error("Failed to send photo file",
			zap.String("id", id),
			zap.String("path", rec.Path),
			zap.Error(err))
		return utils.SendError(c, errors.ErrPhotoNotFound)
	}
	return nil
}

// Rescan - принудительное пересканирование директории.
// POST /api/v1/photos/rescan
func (h *PhotoHandler) Rescan(c *fiber.Ctx) error {
	n, err := h.photoUC.Rescan(c.Context())
	if err != nil {
		h.logger.Error("Manual rescan failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"indexed": n}, nil)
}
