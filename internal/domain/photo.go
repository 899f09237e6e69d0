package domain

// PhotoRecord представляет геотегированную фотографию из проиндексированной
// директории. Запись неизменяема после создания: движок выборки только
// читает её и порождает временные производные результаты.
type PhotoRecord struct {
	ID        string  `json:"id"`
	Path      string  `json:"path"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Heading - азимут камеры в момент съёмки в градусах [0, 360).
	// nil, если в EXIF не было валидного GPSImgDirection.
	Heading *float64 `json:"heading,omitempty"`
}

// HasHeading сообщает, известно ли направление съёмки.
func (p PhotoRecord) HasHeading() bool {
	return p.Heading != nil
}

// SelectedPhoto - фотография, прошедшая отбор, вместе с расстоянием
// от точки обзора в километрах.
type SelectedPhoto struct {
	Distance float64     `json:"distance_km"`
	Photo    PhotoRecord `json:"photo"`
}

// SelectionResult - упорядоченный результат выборки, ближайшие первыми.
// Пересчитывается целиком при каждом изменении точки обзора.
type SelectionResult []SelectedPhoto
