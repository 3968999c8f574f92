package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/kandclay/assets"
	"github.com/milk9111/kandclay/prefabs"
)

// Cursor draws an image in place of the hidden OS cursor.
type Cursor struct {
	image *ebiten.Image
	spec  *prefabs.CursorSpec
}

func NewCursor(m *assets.Manager) (*Cursor, error) {
	spec, err := prefabs.LoadCursorSpec()
	if err != nil {
		return nil, err
	}
	img, err := m.Image(spec.Image)
	if err != nil {
		return nil, err
	}
	return &Cursor{image: img, spec: spec}, nil
}

func (c *Cursor) Draw(screen *ebiten.Image) {
	if c == nil || c.image == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-c.spec.HotX, -c.spec.HotY)
	op.GeoM.Scale(c.spec.Scale, c.spec.Scale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(c.image, op)
}

// Mode is the OS cursor mode to run with. The OS cursor stays visible when
// no cursor image was loaded.
func (c *Cursor) Mode() ebiten.CursorModeType {
	if c == nil || c.image == nil {
		return ebiten.CursorModeVisible
	}
	return ebiten.CursorModeHidden
}
