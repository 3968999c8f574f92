package system

import (
	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
)

// SkeletonAnimationSystem advances every SkeletonView's animation state,
// poses the skeleton and refreshes its world transform.
type SkeletonAnimationSystem struct{}

func NewSkeletonAnimationSystem() *SkeletonAnimationSystem {
	return &SkeletonAnimationSystem{}
}

func (s *SkeletonAnimationSystem) Update(w *ecs.World) {
	dt := float32(w.Delta())
	ecs.ForEach(w, component.SkeletonViewComponent.Kind(), func(e ecs.Entity, view *component.SkeletonView) {
		if view.Skeleton == nil {
			return
		}
		if view.State != nil && !view.Paused {
			view.State.Update(dt * view.TimeScale)
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		Pose(view, t)
	})
}

// Pose copies t onto the view's skeleton and applies the current animation
// state without advancing it. A nil t keeps the skeleton's placement.
func Pose(view *component.SkeletonView, t *component.Transform) {
	if view == nil || view.Skeleton == nil {
		return
	}
	if t != nil {
		view.Skeleton.SetPosition(t.X, t.Y)
		view.Skeleton.SetScale(t.ScaleX, t.ScaleY)
	}
	if view.State != nil {
		view.State.Apply(view.Skeleton)
	}
	view.Skeleton.UpdateWorldTransform()
}
