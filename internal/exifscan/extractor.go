package exifscan

import (
	"fmt"
	"math"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/photo-compass/internal/domain"
	"github.com/photo-compass/internal/pkg/geo"
)

// Extract читает EXIF из файла и возвращает запись с координатами и
// направлением съёмки. Возвращает ошибку, если файл не открывается,
// EXIF отсутствует или широта/долгота не декодируются. Отсутствие
// GPSImgDirection ошибкой не является: запись создаётся с Heading == nil.
func Extract(path string) (*domain.PhotoRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode exif: %w", err)
	}

	lat, err := decodeCoordinate(x, exif.GPSLatitude, exif.GPSLatitudeRef, "N")
	if err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}

	lon, err := decodeCoordinate(x, exif.GPSLongitude, exif.GPSLongitudeRef, "E")
	if err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}

	if !geo.ValidateCoordinates(lat, lon) {
		return nil, fmt.Errorf("coordinates out of range: lat=%f lon=%f", lat, lon)
	}

	return &domain.PhotoRecord{
		Path:      path,
		Latitude:  lat,
		Longitude: lon,
		Heading:   decodeHeading(x),
	}, nil
}

// decodeCoordinate декодирует координату из DMS-триплета рациональных чисел
// и знака из reference-тега: значение отрицательно, если reference
// отличается от positiveRef ("N" для широты, "E" для долготы).
func decodeCoordinate(x *exif.Exif, valueField, refField exif.FieldName, positiveRef string) (float64, error) {
	tag, err := x.Get(valueField)
	if err != nil {
		return 0, err
	}

	deg, err := dmsToDegrees(tag)
	if err != nil {
		return 0, err
	}

	refTag, err := x.Get(refField)
	if err != nil {
		return 0, err
	}
	ref, err := refTag.StringVal()
	if err != nil {
		return 0, err
	}
	if ref != positiveRef {
		deg = -deg
	}

	return deg, nil
}

// dmsToDegrees преобразует триплет градусы/минуты/секунды в десятичные градусы.
func dmsToDegrees(tag *tiff.Tag) (float64, error) {
	if int(tag.Count) < 3 {
		return 0, fmt.Errorf("expected 3 rationals, got %d", tag.Count)
	}

	var parts [3]float64
	for i := 0; i < 3; i++ {
		v, err := rationalToFloat(tag, i)
		if err != nil {
			return 0, err
		}
		parts[i] = v
	}

	return parts[0] + parts[1]/60.0 + parts[2]/3600.0, nil
}

// decodeHeading читает GPSImgDirection. Любая проблема с тегом означает
// отсутствие направления, а не ошибку записи.
func decodeHeading(x *exif.Exif) *float64 {
	tag, err := x.Get(exif.GPSImgDirection)
	if err != nil {
		return nil
	}

	v, err := rationalToFloat(tag, 0)
	if err != nil {
		return nil
	}

	heading := math.Mod(v, 360)
	if heading < 0 {
		heading += 360
	}
	return &heading
}

func rationalToFloat(tag *tiff.Tag, i int) (float64, error) {
	num, den, err := tag.Rat2(i)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, fmt.Errorf("rational with zero denominator")
	}
	return float64(num) / float64(den), nil
}
