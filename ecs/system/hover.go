package system

import (
	"log"
	"sort"

	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
)

// HoverSystem plays hover-in and hover-out animations as the pointer crosses
// button slots. Views on higher render layers take the pointer first: once a
// view's viewport contains it, views below see no hover.
type HoverSystem struct{}

func NewHoverSystem() *HoverSystem {
	return &HoverSystem{}
}

func (s *HoverSystem) Update(w *ecs.World) {
	_, p, ok := ecs.First(w, component.PointerComponent.Kind())
	if !ok {
		return
	}

	covered := false
	for _, t := range buttonTargets(w) {
		hovered := ""
		if !covered {
			hovered = ButtonAt(t.view, t.hb, p.X, p.Y)
			covered = underPointer(t.view, p.X, p.Y)
		}
		if !t.hb.HoverEnabled || t.view.Skeleton == nil || hovered == t.hb.Hovered {
			continue
		}

		if old, ok := t.hb.Button(t.hb.Hovered); ok && old.HoverOut != "" {
			if _, err := t.view.State.SetAnimation(old.HoverTrack, old.HoverOut, false); err != nil {
				log.Printf("hover: %v", err)
			}
		}
		if b, ok := t.hb.Button(hovered); ok && b.HoverIn != "" {
			if _, err := t.view.State.SetAnimation(b.HoverTrack, b.HoverIn, false); err != nil {
				log.Printf("hover: %v", err)
			}
		}
		t.hb.Hovered = hovered
	}
}

type buttonTarget struct {
	e    ecs.Entity
	view *component.SkeletonView
	hb   *component.HoverButtons
}

// buttonTargets lists the entities carrying buttons in input order: highest
// render layer first, then by entity id.
func buttonTargets(w *ecs.World) []buttonTarget {
	entities := ecs.Query(w, component.SkeletonViewComponent.Kind().ID(), component.HoverButtonsComponent.Kind().ID())
	sort.SliceStable(entities, func(i, j int) bool {
		return layerOf(w, entities[i]) > layerOf(w, entities[j])
	})
	out := make([]buttonTarget, 0, len(entities))
	for _, e := range entities {
		view, _ := ecs.Get(w, e, component.SkeletonViewComponent.Kind())
		hb, _ := ecs.Get(w, e, component.HoverButtonsComponent.Kind())
		out = append(out, buttonTarget{e: e, view: view, hb: hb})
	}
	return out
}

func underPointer(view *component.SkeletonView, px, py int) bool {
	for _, vp := range view.Viewports {
		if vp != nil && vp.Contains(px, py) {
			return true
		}
	}
	return false
}

// ButtonAt returns the button whose slot lies under the window pixel
// (px, py), or "" when none does. Viewports are tested in the order the
// view lists them and only the first one under the pointer is used.
func ButtonAt(view *component.SkeletonView, hb *component.HoverButtons, px, py int) string {
	if view.Skeleton == nil {
		return ""
	}
	for _, vp := range view.Viewports {
		if vp == nil || !vp.Contains(px, py) {
			continue
		}
		wx, wy := vp.Unproject(float32(px), float32(py))
		for _, b := range hb.Buttons {
			if view.Skeleton.SlotBounds(b.Slot).Contains(wx, wy) {
				return b.Name
			}
		}
		return ""
	}
	return ""
}
