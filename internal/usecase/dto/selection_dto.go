package dto

import (
	"github.com/photo-compass/internal/domain"
)

// SelectionRequest - параметры запроса выборки по точке обзора.
// Rotation не ограничен диапазоном: приводится по модулю 360 движком.
type SelectionRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"min=-180,max=180"`
	Rotation float64 `json:"rotation"`
}

// Viewpoint преобразует запрос в доменную точку обзора.
func (r SelectionRequest) Viewpoint() domain.Viewpoint {
	return domain.Viewpoint{
		Latitude:  r.Lat,
		Longitude: r.Lon,
		Rotation:  r.Rotation,
	}
}

// SelectedPhotoResponse - одна отобранная фотография в ответе API
type SelectedPhotoResponse struct {
	ID         string   `json:"id"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Heading    *float64 `json:"heading,omitempty"`
	DistanceKm float64  `json:"distance_km"`
	ImageURL   string   `json:"image_url"`
}

// SelectionResponse - упорядоченный результат выборки, ближайшие первыми
type SelectionResponse struct {
	Viewpoint domain.Viewpoint        `json:"viewpoint"`
	Photos    []SelectedPhotoResponse `json:"photos"`
	Total     int                     `json:"total"`
}

// ConvertSelectionResult преобразует доменный результат в ответ API,
// сохраняя порядок.
func ConvertSelectionResult(vp domain.Viewpoint, result domain.SelectionResult) SelectionResponse {
	photos := make([]SelectedPhotoResponse, 0, len(result))
	for _, sp := range result {
		photos = append(photos, SelectedPhotoResponse{
			ID:         sp.Photo.ID,
			Latitude:   sp.Photo.Latitude,
			Longitude:  sp.Photo.Longitude,
			Heading:    sp.Photo.Heading,
			DistanceKm: sp.Distance,
			ImageURL:   ImageURL(sp.Photo.ID),
		})
	}

	return SelectionResponse{
		Viewpoint: vp,
		Photos:    photos,
		Total:     len(photos),
	}
}

// ImageURL - адрес, по которому HTTP-слой отдаёт изображение.
func ImageURL(photoID string) string {
	return "/api/v1/photos/" + photoID + "/image"
}
