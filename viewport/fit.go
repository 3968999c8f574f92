package viewport

// Fit keeps the world size fixed and letterboxes it inside the window.
type Fit struct {
	base
}

func NewFit(worldW, worldH float32) *Fit {
	return &Fit{base: base{worldW: worldW, worldH: worldH}}
}

func (f *Fit) Update(screenW, screenH int, centerCamera bool) {
	vw, vh := fitScale(f.worldW, f.worldH, float32(screenW), float32(screenH))
	w, h := round(vw), round(vh)
	f.SetScreenBounds((screenW-w)/2, (screenH-h)/2, w, h)
	f.center(centerCamera)
}
