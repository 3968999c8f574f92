package screen

import (
	"log"
	"math"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/kandclay/common"
	"github.com/milk9111/kandclay/prefabs"
	"github.com/milk9111/kandclay/prefs"
	"github.com/milk9111/kandclay/sound"
	"github.com/milk9111/kandclay/ui"
)

// SettingsScreen edits the stored preferences.
type SettingsScreen struct {
	*Base

	spec  *prefabs.SettingsSpec
	theme *ui.Theme
	store *prefs.Store

	hair   prefs.HairColor
	height prefs.CharacterHeight
	yellow bool

	volume    *widget.Slider
	hairBtn   *widget.Button
	heightBtn *widget.Button
	coinBtn   *widget.Button
}

func NewSettingsScreen(m *Manager) (*SettingsScreen, error) {
	spec, err := prefabs.LoadSettingsSpec()
	if err != nil {
		return nil, err
	}
	base, err := newBase(m, spec.Background)
	if err != nil {
		return nil, err
	}
	store := prefs.NewMemory()
	if m.Services != nil && m.Services.Prefs != nil {
		store = m.Services.Prefs
	}

	s := &SettingsScreen{
		Base:   base,
		spec:   spec,
		theme:  ui.NewTheme(spec.Controls.Padding),
		store:  store,
		yellow: store.Bool(prefs.KeyCoinColor, true),
	}
	if s.hair, err = prefs.ParseHairColor(store.String(prefs.KeyHairColor, prefs.Blonde.String())); err != nil {
		log.Printf("settings: %v", err)
		s.hair = prefs.Blonde
	}
	if s.height, err = prefs.ParseCharacterHeight(store.String(prefs.KeyCharacterHeight, prefs.Average.String())); err != nil {
		log.Printf("settings: %v", err)
		s.height = prefs.Average
	}
	return s, nil
}

func (s *SettingsScreen) Show() error {
	c := s.spec.Controls
	panel := s.theme.NewPanel(ui.Center, true)

	panel.AddChild(s.theme.NewLabel(s.spec.Title))
	panel.AddChild(s.theme.NewLabel("Volume"))
	steps := volumeSteps(s.spec.VolumeStep)
	current := volumeToSlider(s.store.Float(prefs.KeyVolume, sound.DefaultVolume), s.spec.VolumeStep)
	s.volume = s.theme.NewSlider(0, steps, current, c.SliderWidth, s.setVolume)
	panel.AddChild(s.volume)

	s.hairBtn = s.theme.NewButton(hairLabel(s.hair), c.ControlButtonWidth, c.ButtonHeight, s.cycleHair)
	s.heightBtn = s.theme.NewButton(heightLabel(s.height), c.ControlButtonWidth, c.ButtonHeight, s.cycleHeight)
	s.coinBtn = s.theme.NewButton("Coin: "+coinLabel(s.yellow), c.ControlButtonWidth, c.ButtonHeight, s.toggleCoin)
	panel.AddChild(s.hairBtn)
	panel.AddChild(s.heightBtn)
	panel.AddChild(s.coinBtn)

	back := s.theme.NewPanel(ui.BottomLeft, false)
	back.AddChild(s.theme.NewButton("Back", c.BackButtonWidth, c.ButtonHeight, func() {
		s.Manager.Request(Menu)
	}))

	s.UI = ui.NewRoot(panel, back)
	return nil
}

func (s *SettingsScreen) setVolume(pos int) {
	v := sliderToVolume(pos, s.spec.VolumeStep)
	if s.Manager.Services != nil && s.Manager.Services.Sound != nil {
		s.Manager.Services.Sound.SetVolume(v)
	}
	if err := s.store.SetFloat(prefs.KeyVolume, v); err != nil {
		log.Printf("settings: %v", err)
	}
}

func (s *SettingsScreen) cycleHair() {
	s.hair = s.hair.Next()
	ui.SetLabel(s.hairBtn, hairLabel(s.hair))
	if err := s.store.SetString(prefs.KeyHairColor, s.hair.String()); err != nil {
		log.Printf("settings: %v", err)
	}
}

func (s *SettingsScreen) cycleHeight() {
	s.height = s.height.Next()
	ui.SetLabel(s.heightBtn, heightLabel(s.height))
	if err := s.store.SetString(prefs.KeyCharacterHeight, s.height.String()); err != nil {
		log.Printf("settings: %v", err)
	}
}

func (s *SettingsScreen) toggleCoin() {
	s.yellow = !s.yellow
	ui.SetLabel(s.coinBtn, "Coin: "+coinLabel(s.yellow))
	if err := s.store.SetBool(prefs.KeyCoinColor, s.yellow); err != nil {
		log.Printf("settings: %v", err)
	}
}

func volumeSteps(step float64) int {
	if step <= 0 {
		return 100
	}
	return int(math.Round(1 / step))
}

func volumeToSlider(v, step float64) int {
	return common.Clamp(int(math.Round(v*float64(volumeSteps(step)))), 0, volumeSteps(step))
}

func sliderToVolume(pos int, step float64) float64 {
	return common.Clamp(float64(pos)/float64(volumeSteps(step)), 0, 1)
}

func hairLabel(h prefs.HairColor) string {
	return "Hair: " + h.String()
}

func heightLabel(h prefs.CharacterHeight) string {
	return "Height: " + h.String()
}
