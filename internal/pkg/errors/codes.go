package errors

import "net/http"

var (
	ErrInvalidViewpoint = New(
		"INVALID_VIEWPOINT",
		"Invalid viewpoint: coordinates or rotation out of range",
		http.StatusBadRequest,
	)

	ErrInvalidPhotoRecord = New(
		"INVALID_PHOTO_RECORD",
		"Photo record has malformed coordinates",
		http.StatusInternalServerError,
	)

	ErrPhotoNotFound = New(
		"PHOTO_NOT_FOUND",
		"Photo not found",
		http.StatusNotFound,
	)

	ErrNoGeotaggedPhotos = New(
		"NO_GEOTAGGED_PHOTOS",
		"No photos with GPS data were found",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
