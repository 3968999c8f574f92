package screen

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/kandclay/common"
	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
	"github.com/milk9111/kandclay/ecs/system"
	"github.com/milk9111/kandclay/prefabs"
	"github.com/milk9111/kandclay/prefs"
	"github.com/milk9111/kandclay/skeleton"
	"github.com/milk9111/kandclay/ui"
)

// scrubSteps is the slider resolution over one pass of the coin animation.
const scrubSteps = 1000

// AnimationScreen loops the coin animation at a speed picked with the
// skeleton speed buttons, and lets the user scrub it by hand.
type AnimationScreen struct {
	*Base

	spec      *prefabs.AnimationSpec
	theme     *ui.Theme
	yellow    bool
	coinData  *skeleton.Data
	speedData *skeleton.Data

	coin      ecs.Entity
	coinView  *component.SkeletonView
	speedBtns ecs.Entity
	speedView *component.SkeletonView

	speed  float32
	manual bool
	skin   int

	slider  *widget.Slider
	modeBtn *widget.Button
	coinBtn *widget.Button
	skinBtn *widget.Button
}

func NewAnimationScreen(m *Manager) (*AnimationScreen, error) {
	spec, err := prefabs.LoadAnimationSpec()
	if err != nil {
		return nil, err
	}
	base, err := newBase(m, spec.Background)
	if err != nil {
		return nil, err
	}

	s := &AnimationScreen{
		Base:   base,
		spec:   spec,
		theme:  ui.NewTheme(spec.Controls.Padding),
		yellow: true,
		speed:  1,
	}
	if m.Services != nil && m.Services.Prefs != nil {
		s.yellow = m.Services.Prefs.Bool(prefs.KeyCoinColor, true)
	}
	if s.coinData, err = base.loadSkeleton(spec.Coin.Skeleton(s.yellow)); err != nil {
		return nil, fmt.Errorf("coin: %w", err)
	}
	if s.speedData, err = base.loadSkeleton(spec.SpeedButtons); err != nil {
		return nil, fmt.Errorf("speed buttons: %w", err)
	}
	for i, name := range spec.Skins {
		if name == spec.SpeedButtons.Skin {
			s.skin = i
		}
	}
	return s, nil
}

func (s *AnimationScreen) Show() error {
	if err := s.spawn(); err != nil {
		return err
	}
	s.buildUI()
	return nil
}

// spawn creates the coin and speed button entities.
func (s *AnimationScreen) spawn() error {
	var err error
	if s.coin, s.coinView, err = s.addSkeleton(s.coinData, 0, s.Viewport); err != nil {
		return err
	}
	if _, err := s.coinView.State.SetAnimation(0, s.spec.Coin.Animation, true); err != nil {
		return fmt.Errorf("coin: %w", err)
	}

	if s.speedBtns, s.speedView, err = s.addSkeleton(s.speedData, 1, s.Viewport); err != nil {
		return err
	}
	if err := s.speedView.Skeleton.SetSkin(s.spec.Skins[s.skin]); err != nil {
		return fmt.Errorf("speed buttons: %w", err)
	}
	buttons := &component.HoverButtons{
		Buttons:      s.spec.Buttons,
		PressTrack:   s.spec.PressTrack,
		Enabled:      true,
		HoverEnabled: true,
	}
	if err := ecs.Add(s.World, s.speedBtns, component.HoverButtonsComponent.Kind(), buttons); err != nil {
		return err
	}
	captions := &component.Captions{Height: s.spec.LabelHeight, Color: color.White}
	for _, b := range s.spec.Buttons {
		captions.Items = append(captions.Items, component.Caption{Slot: b.Slot, Text: b.Label})
	}
	if err := ecs.Add(s.World, s.speedBtns, component.CaptionsComponent.Kind(), captions); err != nil {
		return err
	}
	debug := &component.DebugBounds{Colors: []color.Color{color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xc0}}}
	if err := ecs.Add(s.World, s.speedBtns, component.DebugBoundsComponent.Kind(), debug); err != nil {
		return err
	}
	if err := system.PressButton(s.World, s.speedBtns, s.spec.Initial); err != nil {
		log.Printf("animation: %v", err)
	}
	return nil
}

func (s *AnimationScreen) buildUI() {
	c := s.spec.Controls
	controls := s.theme.NewPanel(ui.Bottom, true)

	s.slider = s.theme.NewSlider(0, scrubSteps, 0, c.SliderWidth, s.scrub)
	s.modeBtn = s.theme.NewButton(modeLabel(false), c.ControlButtonWidth, c.ButtonHeight, s.toggleMode)
	s.coinBtn = s.theme.NewButton("Change coin colour", c.ControlButtonWidth, c.ButtonHeight, func() {
		if err := s.toggleCoin(); err != nil {
			log.Printf("animation: %v", err)
		}
	})
	s.skinBtn = s.theme.NewButton(skinLabel(s.spec.Skins[s.skin]), c.ControlButtonWidth, c.ButtonHeight, func() {
		if err := s.swapSkin(); err != nil {
			log.Printf("animation: %v", err)
		}
	})
	controls.AddChild(s.slider)
	controls.AddChild(s.modeBtn)
	controls.AddChild(s.coinBtn)
	controls.AddChild(s.skinBtn)

	back := s.theme.NewPanel(ui.BottomLeft, false)
	back.AddChild(s.theme.NewButton("Back", c.BackButtonWidth, c.ButtonHeight, func() {
		s.Manager.Request(Menu)
	}))

	s.UI = ui.NewRoot(controls, back)
	s.syncControls()
}

// syncControls mirrors the mode and skin onto the widgets once they exist.
func (s *AnimationScreen) syncControls() {
	if s.UI == nil {
		return
	}
	ui.SetEnabled(s.slider, s.manual)
	ui.SetLabel(s.modeBtn, modeLabel(s.manual))
	ui.SetLabel(s.skinBtn, skinLabel(s.spec.Skins[s.skin]))
	if entry := s.coinView.State.Current(0); entry != nil && s.manual {
		s.slider.Current = scrubPosition(entry.TrackTime, entry.Animation.Duration, scrubSteps)
	}
}

func (s *AnimationScreen) Update(dt float64) error {
	if err := s.Base.Update(dt); err != nil {
		return err
	}
	s.handleEvents()
	return nil
}

func (s *AnimationScreen) handleEvents() {
	for _, evt := range s.World.Events().Drain() {
		act, ok := evt.Data.(ecs.ButtonAction)
		if evt.Type != ecs.EventButtonAction || !ok {
			continue
		}
		if act.Action == "speed" {
			s.setSpeed(act.Speed)
		}
	}
}

func (s *AnimationScreen) setSpeed(v float32) {
	if v <= 0 {
		return
	}
	s.speed = v
	s.coinView.TimeScale = v
	log.Printf("animation: speed %.0fx", v)
}

// Speed is the multiplier applied to the coin animation.
func (s *AnimationScreen) Speed() float32 {
	return s.speed
}

func (s *AnimationScreen) toggleMode() {
	s.manual = !s.manual
	s.coinView.Paused = s.manual
	// Fold the loop back into one pass so the slider and the track agree.
	if entry := s.coinView.State.Current(0); entry != nil {
		entry.TrackTime = entry.AnimationTime()
	}
	s.syncControls()
	log.Printf("animation: %s", modeLabel(s.manual))
}

func (s *AnimationScreen) scrub(pos int) {
	if !s.manual {
		return
	}
	if entry := s.coinView.State.Current(0); entry != nil {
		entry.TrackTime = scrubTime(pos, scrubSteps, entry.Animation.Duration)
	}
}

// toggleCoin swaps the coin between yellow and red without losing its place
// in the animation, and remembers the choice.
func (s *AnimationScreen) toggleCoin() error {
	yellow := !s.yellow
	data, err := s.loadSkeleton(s.spec.Coin.Skeleton(yellow))
	if err != nil {
		return fmt.Errorf("coin: %w", err)
	}

	var trackTime float32
	if old := s.coinView.State.Current(0); old != nil {
		trackTime = old.TrackTime
	}
	state := skeleton.NewAnimationState(data)
	entry, err := state.SetAnimation(0, s.spec.Coin.Animation, true)
	if err != nil {
		return fmt.Errorf("coin: %w", err)
	}
	entry.TrackTime = trackTime

	s.yellow = yellow
	s.coinData = data
	s.coinView.Skeleton = skeleton.NewSkeleton(data)
	s.coinView.State = state
	s.layout()
	t, _ := ecs.Get(s.World, s.coin, component.TransformComponent.Kind())
	system.Pose(s.coinView, t)

	if s.Manager.Services != nil && s.Manager.Services.Prefs != nil {
		if err := s.Manager.Services.Prefs.SetBool(prefs.KeyCoinColor, yellow); err != nil {
			return err
		}
	}
	log.Printf("animation: coin %s", coinLabel(yellow))
	return nil
}

func (s *AnimationScreen) swapSkin() error {
	next := (s.skin + 1) % len(s.spec.Skins)
	if err := s.speedView.Skeleton.SetSkin(s.spec.Skins[next]); err != nil {
		return err
	}
	s.skin = next
	s.syncControls()
	log.Printf("animation: skin %s", s.spec.Skins[next])
	return nil
}

func (s *AnimationScreen) Resize(w, h int) {
	s.Base.Resize(w, h)
	s.layout()
}

func (s *AnimationScreen) layout() {
	if t, ok := ecs.Get(s.World, s.coin, component.TransformComponent.Kind()); ok {
		SetSkeletonScale(t, s.coinData, s.spec.Coin.WidthPct, s.spec.Coin.HeightPct, s.Viewport)
		cx, cy := worldCenter(s.Viewport)
		SetSkeletonPosition(t, s.coinData, cx, cy)
	}
	if t, ok := ecs.Get(s.World, s.speedBtns, component.TransformComponent.Kind()); ok {
		sb := s.spec.SpeedButtons
		SetSkeletonScale(t, s.speedData, sb.WidthPct, sb.HeightPct, s.Viewport)
		left, top := worldTopLeft(s.Viewport)
		SetSkeletonTopLeft(t, s.speedData, left, top)
	}
}

func scrubTime(pos, steps int, duration float32) float32 {
	if steps <= 0 {
		return 0
	}
	return duration * float32(common.Clamp(pos, 0, steps)) / float32(steps)
}

func scrubPosition(animTime, duration float32, steps int) int {
	if duration <= 0 {
		return 0
	}
	p := int(math.Round(float64(animTime / duration * float32(steps))))
	return common.Clamp(p, 0, steps)
}

func modeLabel(manual bool) string {
	if manual {
		return "Mode: Manual"
	}
	return "Mode: Automatic"
}

func skinLabel(skin string) string {
	return "Skin: " + skin
}

func coinLabel(yellow bool) string {
	if yellow {
		return "Yellow"
	}
	return "Red"
}
