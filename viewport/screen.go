package viewport

// Screen maps one window pixel to UnitsPerPixel world units.
type Screen struct {
	base
	UnitsPerPixel float32
}

func NewScreen() *Screen {
	return &Screen{UnitsPerPixel: 1}
}

func (s *Screen) Update(screenW, screenH int, centerCamera bool) {
	s.SetScreenBounds(0, 0, screenW, screenH)
	s.worldW = float32(screenW) * s.UnitsPerPixel
	s.worldH = float32(screenH) * s.UnitsPerPixel
	s.center(centerCamera)
}
