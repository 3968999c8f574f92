package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/kandclay/common"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SkeletonSpec names a skeleton export and how much of the viewport it fills.
type SkeletonSpec struct {
	Atlas     string  `yaml:"atlas"`
	JSON      string  `yaml:"json"`
	Skin      string  `yaml:"skin"`
	Animation string  `yaml:"animation"`
	WidthPct  float32 `yaml:"width_pct"`
	HeightPct float32 `yaml:"height_pct"`
}

func (s SkeletonSpec) validate(field string) error {
	if s.Atlas == "" || s.JSON == "" {
		return fmt.Errorf("%s: atlas and json are required", field)
	}
	return nil
}

// ButtonSpec is a skeleton-drawn button: a hit slot plus the animations
// played when the pointer enters, leaves or presses it.
type ButtonSpec struct {
	Name       string  `yaml:"name"`
	Label      string  `yaml:"label"`
	Slot       string  `yaml:"slot"`
	HoverTrack int     `yaml:"hover_track"`
	HoverIn    string  `yaml:"hover_in"`
	HoverOut   string  `yaml:"hover_out"`
	Press      string  `yaml:"press"`
	Action     string  `yaml:"action"`
	Speed      float32 `yaml:"speed"`
}

func validateButtons(buttons []ButtonSpec) error {
	if len(buttons) == 0 {
		return errors.New("at least one button is required")
	}
	seen := make(map[string]bool, len(buttons))
	for _, b := range buttons {
		if b.Name == "" || b.Slot == "" {
			return fmt.Errorf("button %q: name and slot are required", b.Name)
		}
		if seen[b.Name] {
			return fmt.Errorf("button %q: duplicate name", b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

type CaptionSpec struct {
	Slot string `yaml:"slot"`
	Text string `yaml:"text"`
}

type MinimapSpec struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Padding     int     `yaml:"padding"`
	WorldWidth  float32 `yaml:"world_width"`
	WorldHeight float32 `yaml:"world_height"`
}

type MenuSpec struct {
	Background  string        `yaml:"background"`
	Skeleton    SkeletonSpec  `yaml:"skeleton"`
	ClickTrack  int           `yaml:"click_track"`
	Buttons     []ButtonSpec  `yaml:"buttons"`
	Captions    []CaptionSpec `yaml:"captions"`
	Minimap     MinimapSpec   `yaml:"minimap"`
	DebugMain   YAMLColor     `yaml:"debug_main"`
	DebugMini   YAMLColor     `yaml:"debug_minimap"`
	LabelHeight float32       `yaml:"label_height"`
}

func LoadMenuSpec() (*MenuSpec, error) {
	spec, err := LoadSpec[MenuSpec]("menu.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Skeleton.validate("skeleton"); err != nil {
		return nil, fmt.Errorf("prefabs: menu.yaml: %w", err)
	}
	if err := validateButtons(spec.Buttons); err != nil {
		return nil, fmt.Errorf("prefabs: menu.yaml: %w", err)
	}
	return &spec, nil
}

type CoinSpec struct {
	Atlas     string  `yaml:"atlas"`
	Yellow    string  `yaml:"yellow"`
	Red       string  `yaml:"red"`
	Animation string  `yaml:"animation"`
	WidthPct  float32 `yaml:"width_pct"`
	HeightPct float32 `yaml:"height_pct"`
}

// Skeleton returns the coin skeleton for the chosen colour.
func (c CoinSpec) Skeleton(yellow bool) SkeletonSpec {
	json := c.Red
	if yellow {
		json = c.Yellow
	}
	return SkeletonSpec{Atlas: c.Atlas, JSON: json, Animation: c.Animation, WidthPct: c.WidthPct, HeightPct: c.HeightPct}
}

// ControlsSpec sizes the widget panels, in screen pixels.
type ControlsSpec struct {
	Padding            int `yaml:"padding"`
	SliderWidth        int `yaml:"slider_width"`
	ButtonHeight       int `yaml:"button_height"`
	BackButtonWidth    int `yaml:"back_button_width"`
	ControlButtonWidth int `yaml:"control_button_width"`
}

type AnimationSpec struct {
	Background   string       `yaml:"background"`
	Coin         CoinSpec     `yaml:"coin"`
	SpeedButtons SkeletonSpec `yaml:"speed_buttons"`
	Skins        []string     `yaml:"skins"`
	PressTrack   int          `yaml:"press_track"`
	Initial      string       `yaml:"initial"`
	Buttons      []ButtonSpec `yaml:"buttons"`
	Controls     ControlsSpec `yaml:"controls"`
	LabelHeight  float32      `yaml:"label_height"`
}

func LoadAnimationSpec() (*AnimationSpec, error) {
	spec, err := LoadSpec[AnimationSpec]("animation.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Coin.Yellow == "" || spec.Coin.Red == "" || spec.Coin.Atlas == "" {
		return nil, errors.New("prefabs: animation.yaml: coin atlas, yellow and red are required")
	}
	if err := spec.SpeedButtons.validate("speed_buttons"); err != nil {
		return nil, fmt.Errorf("prefabs: animation.yaml: %w", err)
	}
	if err := validateButtons(spec.Buttons); err != nil {
		return nil, fmt.Errorf("prefabs: animation.yaml: %w", err)
	}
	if len(spec.Skins) < 2 {
		return nil, errors.New("prefabs: animation.yaml: two skins are required to swap between")
	}
	return &spec, nil
}

type SettingsSpec struct {
	Background string       `yaml:"background"`
	Title      string       `yaml:"title"`
	Controls   ControlsSpec `yaml:"controls"`
	VolumeStep float64      `yaml:"volume_step"`
}

func LoadSettingsSpec() (*SettingsSpec, error) {
	spec, err := LoadSpec[SettingsSpec]("settings.yaml")
	if err != nil {
		return nil, err
	}
	if spec.VolumeStep <= 0 || spec.VolumeStep > 1 {
		return nil, fmt.Errorf("prefabs: settings.yaml: volume_step %v out of (0, 1]", spec.VolumeStep)
	}
	return &spec, nil
}

// TrailSpec tunes the cursor trail dots.
type TrailSpec struct {
	Skeleton    SkeletonSpec `yaml:"skeleton"`
	Hues        int          `yaml:"hues"`
	Saturation  float32      `yaml:"saturation"`
	Value       float32      `yaml:"value"`
	Alpha       float32      `yaml:"alpha"`
	MinScale    float32      `yaml:"min_scale"`
	MaxScale    float32      `yaml:"max_scale"`
	MaxRotation int          `yaml:"max_rotation"`
}

func LoadTrailSpec() (*TrailSpec, error) {
	spec, err := LoadSpec[TrailSpec]("trail.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Skeleton.validate("skeleton"); err != nil {
		return nil, fmt.Errorf("prefabs: trail.yaml: %w", err)
	}
	if spec.Hues <= 0 || spec.MinScale > spec.MaxScale {
		return nil, fmt.Errorf("prefabs: trail.yaml: need hues > 0 and min_scale <= max_scale")
	}
	return &spec, nil
}

type CursorSpec struct {
	Image string  `yaml:"image"`
	HotX  float64 `yaml:"hot_x"`
	HotY  float64 `yaml:"hot_y"`
	Scale float64 `yaml:"scale"`
}

func LoadCursorSpec() (*CursorSpec, error) {
	spec, err := LoadSpec[CursorSpec]("cursor.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Scale <= 0 {
		spec.Scale = 1
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	v, err := common.ParseHexColor(strings.TrimPrefix(value.Value, "#"))
	if err != nil {
		return err
	}
	c.Color = color.NRGBA{R: uint8(v[0]*255 + 0.5), G: uint8(v[1]*255 + 0.5), B: uint8(v[2]*255 + 0.5), A: uint8(v[3]*255 + 0.5)}
	return nil
}
