// Package viewport maps a Y-up world rectangle onto a region of the window.
package viewport

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Camera is the world-space point shown at the centre of a viewport.
type Camera struct {
	X, Y float32
}

// Viewport converts between world units and window pixels.
//
// World space is Y-up with the camera at its centre. Screen space is the
// ebiten window with Y pointing down.
type Viewport interface {
	Update(screenW, screenH int, centerCamera bool)
	WorldWidth() float32
	WorldHeight() float32
	ScreenBounds() image.Rectangle
	SetScreenBounds(x, y, w, h int)
	Camera() *Camera
	Project(wx, wy float32) (sx, sy float32)
	Unproject(sx, sy float32) (wx, wy float32)
	GeoM() ebiten.GeoM
	Contains(sx, sy int) bool
}

type base struct {
	worldW, worldH float32
	screen         image.Rectangle
	cam            Camera
}

func (b *base) WorldWidth() float32 {
	return b.worldW
}

func (b *base) WorldHeight() float32 {
	return b.worldH
}

func (b *base) ScreenBounds() image.Rectangle {
	return b.screen
}

func (b *base) SetScreenBounds(x, y, w, h int) {
	b.screen = image.Rect(x, y, x+w, y+h)
}

func (b *base) Camera() *Camera {
	return &b.cam
}

func (b *base) Contains(sx, sy int) bool {
	return image.Pt(sx, sy).In(b.screen)
}

func (b *base) scale() (float32, float32) {
	if b.worldW == 0 || b.worldH == 0 {
		return 0, 0
	}
	return float32(b.screen.Dx()) / b.worldW, float32(b.screen.Dy()) / b.worldH
}

func (b *base) origin() (float32, float32) {
	return b.cam.X - b.worldW/2, b.cam.Y - b.worldH/2
}

func (b *base) Project(wx, wy float32) (float32, float32) {
	sx, sy := b.scale()
	ox, oy := b.origin()
	return float32(b.screen.Min.X) + (wx-ox)*sx, float32(b.screen.Max.Y) - (wy-oy)*sy
}

func (b *base) Unproject(px, py float32) (float32, float32) {
	sx, sy := b.scale()
	if sx == 0 || sy == 0 {
		return 0, 0
	}
	ox, oy := b.origin()
	return ox + (px-float32(b.screen.Min.X))/sx, oy + (float32(b.screen.Max.Y)-py)/sy
}

func (b *base) GeoM() ebiten.GeoM {
	sx, sy := b.scale()
	ox, oy := b.origin()
	var g ebiten.GeoM
	g.Translate(float64(-ox), float64(-oy))
	g.Scale(float64(sx), float64(-sy))
	g.Translate(float64(b.screen.Min.X), float64(b.screen.Max.Y))
	return g
}

func (b *base) center(centerCamera bool) {
	if centerCamera {
		b.cam = Camera{X: b.worldW / 2, Y: b.worldH / 2}
	}
}

// fitScale returns the size of a w x h box scaled uniformly to fit inside tw x th.
func fitScale(w, h, tw, th float32) (float32, float32) {
	if w == 0 || h == 0 {
		return 0, 0
	}
	s := min(tw/w, th/h)
	return w * s, h * s
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}
