package handler_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/photo-compass/internal/delivery/http/handler"
	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/repository/memory"
	"github.com/photo-compass/internal/usecase"
)

func heading(v float64) *float64 { return &v }

func newTestApp(records []domain.PhotoRecord) *fiber.App {
	logger := zap.NewNop()
	repo := memory.NewPhotoRepository(records)
	selectionUC := usecase.NewSelectionUseCase(repo, logger)
	photoUC := usecase.NewPhotoUseCase(repo, nil, logger, "/photos")

	selectionHandler := handler.NewSelectionHandler(selectionUC, logger)
	photoHandler := handler.NewPhotoHandler(photoUC, logger)

	app := fiber.New()
	app.Get("/api/v1/selection", selectionHandler.GetSelection)
	app.Get("/api/v1/photos", photoHandler.ListPhotos)
	app.Get("/api/v1/photos/:id/image", photoHandler.GetPhotoImage)
	return app
}

func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestSelectionHandler_GetSelection(t *testing.T) {
	records := []domain.PhotoRecord{
		{ID: "far", Path: "/photos/far.jpg", Latitude: 0, Longitude: 0.45, Heading: heading(0)},
		{ID: "near", Path: "/photos/near.jpg", Latitude: 0, Longitude: 0.09, Heading: heading(0)},
		{ID: "behind", Path: "/photos/behind.jpg", Latitude: 0, Longitude: -0.5, Heading: heading(0)},
	}
	app := newTestApp(records)

	t.Run("returns ordered selection", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/selection?lat=0&lon=0&rotation=90", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		data := body["data"].(map[string]interface{})
		photos := data["photos"].([]interface{})

		require.Len(t, photos, 2)
		first := photos[0].(map[string]interface{})
		second := photos[1].(map[string]interface{})
		assert.Equal(t, "near", first["id"])
		assert.Equal(t, "far", second["id"])
		assert.Equal(t, "/api/v1/photos/near/image", first["image_url"])
	})

	t.Run("missing lat", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/selection?lon=0", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/selection?lat=91&lon=0", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		errObj := body["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_VIEWPOINT", errObj["code"])
	})

	t.Run("rotation defaults to zero", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/selection?lat=0&lon=0", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(0), data["total"])
	})
}

func TestPhotoHandler_ListPhotos(t *testing.T) {
	records := []domain.PhotoRecord{
		{ID: "a", Path: "/photos/a.jpg", Latitude: 41.38, Longitude: 2.17, Heading: heading(90)},
		{ID: "b", Path: "/photos/b.jpg", Latitude: 48.85, Longitude: 2.35},
	}
	app := newTestApp(records)

	req := httptest.NewRequest("GET", "/api/v1/photos", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	photos := data["photos"].([]interface{})
	require.Len(t, photos, 2)

	first := photos[0].(map[string]interface{})
	assert.Equal(t, "a", first["id"])
	_, hasPath := first["path"]
	assert.False(t, hasPath, "filesystem path must not be exposed")
}

func TestPhotoHandler_GetPhotoImage_NotFound(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest("GET", "/api/v1/photos/unknown/image", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
