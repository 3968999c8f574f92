package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/kandclay/common"
	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
)

// DebugBoundsSystem outlines the world bounds of every slot of entities
// tagged with DebugBounds.
type DebugBoundsSystem struct {
	Enabled bool
}

func NewDebugBoundsSystem(enabled bool) *DebugBoundsSystem {
	return &DebugBoundsSystem{Enabled: enabled}
}

func (d *DebugBoundsSystem) Update(*ecs.World) {}

func (d *DebugBoundsSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if !d.Enabled {
		return
	}
	ecs.ForEach2(w, component.SkeletonViewComponent.Kind(), component.DebugBoundsComponent.Kind(), func(_ ecs.Entity, view *component.SkeletonView, dbg *component.DebugBounds) {
		if view.Skeleton == nil || len(dbg.Colors) == 0 {
			return
		}
		for i, vp := range view.Viewports {
			dst := clip(screen, vp)
			if dst == nil {
				continue
			}
			col := dbg.Colors[min(i, len(dbg.Colors)-1)]
			for _, slot := range view.Skeleton.Slots {
				r := common.RectFromPoints(slot.WorldVertices())
				if r.Empty() {
					continue
				}
				x0, y0 := vp.Project(r.X, r.Y+r.H)
				x1, y1 := vp.Project(r.X+r.W, r.Y)
				vector.StrokeRect(dst, x0, y0, x1-x0, y1-y0, 1, col, false)
			}
		}
	})
}
