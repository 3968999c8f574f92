package screen

import (
	"fmt"
	"image/color"
	"log"

	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
	"github.com/milk9111/kandclay/prefabs"
	"github.com/milk9111/kandclay/skeleton"
	"github.com/milk9111/kandclay/viewport"
)

// MenuScreen shows the animated main menu and a minimap copy of it in the
// top-right corner. The copy has its own skeleton and animation state, so
// hovering one does not animate the other. Hover starts once the intro has
// played; presses are accepted from the first frame.
type MenuScreen struct {
	*Base

	spec    *prefabs.MenuSpec
	data    *skeleton.Data
	minimap *viewport.Fit

	main menuView
	mini menuView
}

type menuView struct {
	entity  ecs.Entity
	view    *component.SkeletonView
	buttons *component.HoverButtons
}

func NewMenuScreen(m *Manager) (*MenuScreen, error) {
	spec, err := prefabs.LoadMenuSpec()
	if err != nil {
		return nil, err
	}
	base, err := newBase(m, spec.Background)
	if err != nil {
		return nil, err
	}
	data, err := base.loadSkeleton(spec.Skeleton)
	if err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}
	return &MenuScreen{
		Base:    base,
		spec:    spec,
		data:    data,
		minimap: viewport.NewFit(spec.Minimap.WorldWidth, spec.Minimap.WorldHeight),
	}, nil
}

func (s *MenuScreen) Show() error {
	var err error
	if s.main, err = s.addMenu(0, s.Viewport, s.spec.DebugMain.Color); err != nil {
		return err
	}
	// The minimap draws on a higher layer so it takes input where the two overlap.
	if s.mini, err = s.addMenu(1, s.minimap, s.spec.DebugMini.Color); err != nil {
		return err
	}
	return nil
}

// addMenu spawns one menu skeleton drawn through vp and starts its intro.
func (s *MenuScreen) addMenu(layer int, vp viewport.Viewport, debugColor color.Color) (menuView, error) {
	e, view, err := s.addSkeleton(s.data, layer, vp)
	if err != nil {
		return menuView{}, err
	}
	mv := menuView{entity: e, view: view}

	mv.buttons = &component.HoverButtons{
		Buttons:    s.spec.Buttons,
		PressTrack: s.spec.ClickTrack,
		Enabled:    true,
	}
	if err := ecs.Add(s.World, e, component.HoverButtonsComponent.Kind(), mv.buttons); err != nil {
		return menuView{}, err
	}

	captions := &component.Captions{Height: s.spec.LabelHeight, Color: color.White}
	for _, b := range s.spec.Buttons {
		captions.Items = append(captions.Items, component.Caption{Slot: b.Slot, Text: b.Label})
	}
	for _, c := range s.spec.Captions {
		captions.Items = append(captions.Items, component.Caption{Slot: c.Slot, Text: c.Text})
	}
	if err := ecs.Add(s.World, e, component.CaptionsComponent.Kind(), captions); err != nil {
		return menuView{}, err
	}

	debug := &component.DebugBounds{Colors: []color.Color{debugColor}}
	if err := ecs.Add(s.World, e, component.DebugBoundsComponent.Kind(), debug); err != nil {
		return menuView{}, err
	}

	intro, err := view.State.SetAnimation(0, s.spec.Skeleton.Animation, false)
	if err != nil {
		// Without an intro there is nothing to wait for.
		log.Printf("menu: %v", err)
		mv.buttons.HoverEnabled = true
		return mv, nil
	}
	buttons := mv.buttons
	intro.SetListener(skeleton.Listener{
		Complete: func(*skeleton.TrackEntry) {
			buttons.HoverEnabled = true
			log.Printf("menu: intro complete on layer %d", layer)
		},
	})
	return mv, nil
}

func (s *MenuScreen) Update(dt float64) error {
	if err := s.Base.Update(dt); err != nil {
		return err
	}
	for _, evt := range s.World.Events().Drain() {
		act, ok := evt.Data.(ecs.ButtonAction)
		if evt.Type != ecs.EventButtonAction || !ok {
			continue
		}
		s.handleAction(act.Action)
	}
	return nil
}

func (s *MenuScreen) handleAction(action string) {
	if action == "quit" {
		log.Printf("menu: quit")
		s.Manager.Quit()
		return
	}
	t, err := ParseType(action)
	if err != nil {
		log.Printf("menu: %v", err)
		return
	}
	s.Manager.Request(t)
}

func (s *MenuScreen) Resize(w, h int) {
	s.Base.Resize(w, h)

	mm := s.spec.Minimap
	s.minimap.Update(w, h, true)
	s.minimap.SetScreenBounds(w-mm.Width-mm.Padding, mm.Padding, mm.Width, mm.Height)

	sk := s.spec.Skeleton
	if t, ok := ecs.Get(s.World, s.main.entity, component.TransformComponent.Kind()); ok {
		SetSkeletonScale(t, s.data, sk.WidthPct, sk.HeightPct, s.Viewport)
		cx, cy := worldCenter(s.Viewport)
		SetSkeletonPosition(t, s.data, cx, cy)
	}
	if t, ok := ecs.Get(s.World, s.mini.entity, component.TransformComponent.Kind()); ok {
		SetSkeletonScale(t, s.data, sk.WidthPct, sk.HeightPct, s.minimap)
		cx, cy := worldCenter(s.minimap)
		SetSkeletonPosition(t, s.data, cx, cy)
	}
}
