package domain

// Viewpoint - текущее состояние карты: центр и направление взгляда.
// Создаётся заново на каждое событие pan/zoom/rotate, нигде не сохраняется.
type Viewpoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Rotation - азимут взгляда в градусах. Допускается любое вещественное
	// значение, приводится по модулю 360 при вычислении угловой разницы.
	Rotation float64 `json:"rotation"`
}
