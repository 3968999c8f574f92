package component

import (
	"github.com/milk9111/kandclay/prefabs"
	"github.com/milk9111/kandclay/skeleton"
	"github.com/milk9111/kandclay/viewport"
)

// TrailEmitter spawns a dot every time the pointer moves.
type TrailEmitter struct {
	Spec     *prefabs.TrailSpec
	Data     *skeleton.Data
	Viewport viewport.Viewport
	// Hue is the colour wheel position of the next dot, in degrees.
	Hue int
	// Rand returns a float in [0, 1). Nil uses math/rand.
	Rand func() float32
}

var TrailEmitterComponent = NewComponent[TrailEmitter]()

// TrailDot is one fading dot left behind by the cursor.
type TrailDot struct {
	Skeleton *skeleton.Skeleton
	State    *skeleton.AnimationState
	X, Y     float32
}

var TrailDotComponent = NewComponent[TrailDot]()
