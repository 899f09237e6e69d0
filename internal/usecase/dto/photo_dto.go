package dto

import (
	"github.com/photo-compass/internal/domain"
)

// PhotoResponse - фотография в ответе API. Путь в файловой системе
// наружу не отдаётся, изображение доступно по ImageURL.
type PhotoResponse struct {
	ID        string   `json:"id"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Heading   *float64 `json:"heading,omitempty"`
	ImageURL  string   `json:"image_url"`
}

// PhotoListResponse - полный индекс фотографий
type PhotoListResponse struct {
	Photos []PhotoResponse `json:"photos"`
	Total  int             `json:"total"`
}

func ConvertPhoto(rec domain.PhotoRecord) PhotoResponse {
	return PhotoResponse{
		ID:        rec.ID,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Heading:   rec.Heading,
		ImageURL:  ImageURL(rec.ID),
	}
}

func ConvertPhotoList(records []domain.PhotoRecord) PhotoListResponse {
	photos := make([]PhotoResponse, 0, len(records))
	for _, rec := range records {
		photos = append(photos, ConvertPhoto(rec))
	}
	return PhotoListResponse{
		Photos: photos,
		Total:  len(photos),
	}
}
