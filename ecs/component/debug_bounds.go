package component

import "image/color"

// DebugBounds outlines every slot of a SkeletonView, one colour per viewport.
type DebugBounds struct {
	Colors []color.Color
}

var DebugBoundsComponent = NewComponent[DebugBounds]()
