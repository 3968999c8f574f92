package viewport

// Extend keeps at least MinWidth x MinHeight visible and grows the world
// along one axis to fill the window without letterboxing.
type Extend struct {
	base
	MinWidth, MinHeight float32
}

func NewExtend(minW, minH float32) *Extend {
	return &Extend{base: base{worldW: minW, worldH: minH}, MinWidth: minW, MinHeight: minH}
}

func (e *Extend) Update(screenW, screenH int, centerCamera bool) {
	sw, sh := float32(screenW), float32(screenH)
	worldW, worldH := e.MinWidth, e.MinHeight
	vw, vh := fitScale(worldW, worldH, sw, sh)
	w, h := round(vw), round(vh)

	switch {
	case w < screenW && vh > 0:
		toViewport := vh / worldH
		lengthen := (sw - float32(w)) / toViewport
		worldW += lengthen
		w += round(lengthen * toViewport)
	case h < screenH && vw > 0:
		toViewport := vw / worldW
		lengthen := (sh - float32(h)) / toViewport
		worldH += lengthen
		h += round(lengthen * toViewport)
	}

	e.worldW, e.worldH = worldW, worldH
	e.SetScreenBounds((screenW-w)/2, (screenH-h)/2, w, h)
	e.center(centerCamera)
}
