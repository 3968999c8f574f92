package system

import (
	"fmt"
	"log"

	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
	"github.com/milk9111/kandclay/skeleton"
)

// ClickSystem starts a button's press animation when it is clicked. The
// button's action is emitted as an ecs.ButtonAction once that animation
// completes, and keyed Spine events become sound requests.
type ClickSystem struct{}

func NewClickSystem() *ClickSystem {
	return &ClickSystem{}
}

func (s *ClickSystem) Update(w *ecs.World) {
	_, p, ok := ecs.First(w, component.PointerComponent.Kind())
	if !ok || !p.Pressed {
		return
	}

	// Only the topmost view under the pointer receives the click.
	for _, t := range buttonTargets(w) {
		if !underPointer(t.view, p.X, p.Y) {
			continue
		}
		if !t.hb.Enabled || t.hb.Pressing != "" {
			return
		}
		name := ButtonAt(t.view, t.hb, p.X, p.Y)
		if name == "" {
			return
		}
		if err := PressButton(w, t.e, name); err != nil {
			log.Printf("click: %v", err)
		}
		return
	}
}

// PressButton plays the named button's press animation on the entity's
// press track as if it had been clicked.
func PressButton(w *ecs.World, e ecs.Entity, name string) error {
	view, ok := ecs.Get(w, e, component.SkeletonViewComponent.Kind())
	if !ok || view.State == nil {
		return fmt.Errorf("press %s: entity %v has no skeleton", name, e)
	}
	hb, ok := ecs.Get(w, e, component.HoverButtonsComponent.Kind())
	if !ok {
		return fmt.Errorf("press %s: entity %v has no buttons", name, e)
	}
	b, ok := hb.Button(name)
	if !ok {
		return fmt.Errorf("press %s: unknown button", name)
	}

	entry, err := view.State.SetAnimation(hb.PressTrack, b.Press, false)
	if err != nil {
		return fmt.Errorf("press %s: %w", name, err)
	}
	hb.Pressing = b.Name
	hb.Selected = b.Name
	log.Printf("click: %s pressed", b.Name)

	entry.SetListener(skeleton.Listener{
		Event: func(_ *skeleton.TrackEntry, ev skeleton.Event) {
			if ev.Data == nil {
				return
			}
			if err := RequestSound(w, ev.Data.Name); err != nil {
				log.Printf("click: %v", err)
			}
		},
		Complete: func(*skeleton.TrackEntry) {
			if hb.Pressing == b.Name {
				hb.Pressing = ""
			}
			w.Events().Push(ecs.Event{
				Type: ecs.EventButtonAction,
				Data: ecs.ButtonAction{Entity: e, Button: b.Name, Action: b.Action, Speed: b.Speed},
			})
		},
		Interrupt: func(*skeleton.TrackEntry) {
			if hb.Pressing == b.Name {
				hb.Pressing = ""
			}
		},
	})
	return nil
}
