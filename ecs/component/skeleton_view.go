package component

import (
	"github.com/milk9111/kandclay/skeleton"
	"github.com/milk9111/kandclay/viewport"
)

// SkeletonView is an animated skeleton drawn through one or more viewports.
type SkeletonView struct {
	Skeleton *skeleton.Skeleton
	State    *skeleton.AnimationState
	// TimeScale multiplies the frame delta before the state advances.
	TimeScale float32
	// Paused skips the state update but still applies the current pose.
	Paused    bool
	Viewports []viewport.Viewport
}

var SkeletonViewComponent = NewComponent[SkeletonView]()
