package component

import "image/color"

// Caption is text centred on a slot's bounds.
type Caption struct {
	Slot string
	Text string
}

// Captions draws labels over a SkeletonView's slots.
type Captions struct {
	Items []Caption
	// Height is the glyph height in world units.
	Height float32
	Color  color.Color
}

var CaptionsComponent = NewComponent[Captions]()
