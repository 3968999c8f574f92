// Package screen holds the game's screens and the manager that switches
// between them.
package screen

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/kandclay/assets"
	"github.com/milk9111/kandclay/prefs"
	"github.com/milk9111/kandclay/sound"
)

// Screen is one full-window state of the game.
type Screen interface {
	Show() error
	Update(dt float64) error
	Draw(dst *ebiten.Image)
	Resize(w, h int)
	Pause()
	Resume()
	Hide()
	Dispose()
}

type Type int

const (
	Menu Type = iota
	Main
	Settings
)

func (t Type) String() string {
	switch t {
	case Menu:
		return "menu"
	case Main:
		return "main"
	case Settings:
		return "settings"
	default:
		return fmt.Sprintf("screen(%d)", int(t))
	}
}

func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "menu":
		return Menu, nil
	case "main", "animation":
		return Main, nil
	case "settings", "options":
		return Settings, nil
	}
	return Menu, fmt.Errorf("screen: unknown screen %q", s)
}

// Services are the long-lived objects screens share.
type Services struct {
	Assets *assets.Manager
	Sound  *sound.Manager
	Prefs  *prefs.Store
	Debug  bool
}

// Factory builds a screen. The manager is passed so screens can request
// changes.
type Factory func(m *Manager) (Screen, error)

// DefaultFactories maps every Type to its screen constructor.
func DefaultFactories() map[Type]Factory {
	return map[Type]Factory{
		Menu:     func(m *Manager) (Screen, error) { return NewMenuScreen(m) },
		Main:     func(m *Manager) (Screen, error) { return NewAnimationScreen(m) },
		Settings: func(m *Manager) (Screen, error) { return NewSettingsScreen(m) },
	}
}

// Manager owns the current screen and forwards the game lifecycle to it.
type Manager struct {
	Services *Services

	factories   map[Type]Factory
	current     Screen
	currentType Type
	// failed marks a screen of currentType that could not be shown, so a
	// reload retries it.
	failed  bool
	pending *Type
	width   int
	height  int
	quit    bool
}

func NewManager(services *Services, factories map[Type]Factory) *Manager {
	if factories == nil {
		factories = DefaultFactories()
	}
	return &Manager{Services: services, factories: factories}
}

// SetScreen hides and disposes the current screen, then builds, shows and
// sizes the new one. A screen whose Show fails is disposed and never
// becomes current.
func (m *Manager) SetScreen(t Type) error {
	factory, ok := m.factories[t]
	if !ok {
		return fmt.Errorf("screen: no factory for %s", t)
	}
	next, err := factory(m)
	if err != nil {
		return fmt.Errorf("screen: build %s: %w", t, err)
	}

	if m.current != nil {
		m.current.Hide()
		m.current.Dispose()
	}
	m.current = nil
	m.currentType = t
	if err := next.Show(); err != nil {
		next.Dispose()
		m.failed = true
		return fmt.Errorf("screen: show %s: %w", t, err)
	}
	m.current = next
	m.failed = false
	if m.width > 0 && m.height > 0 {
		next.Resize(m.width, m.height)
	}
	log.Printf("screen: now showing %s", t)
	return nil
}

// Request switches to t once the current frame finishes.
func (m *Manager) Request(t Type) {
	m.pending = &t
}

// Reload rebuilds the current screen, used after assets change on disk.
func (m *Manager) Reload() error {
	if m.current == nil && !m.failed {
		return nil
	}
	return m.SetScreen(m.currentType)
}

func (m *Manager) Quit() {
	m.quit = true
}

func (m *Manager) Quitting() bool {
	return m.quit
}

func (m *Manager) Current() Screen {
	return m.current
}

func (m *Manager) CurrentType() Type {
	return m.currentType
}

func (m *Manager) Size() (int, int) {
	return m.width, m.height
}

// Update runs the current screen, then applies any change it requested.
func (m *Manager) Update(dt float64) error {
	if m.current != nil {
		if err := m.current.Update(dt); err != nil {
			return err
		}
	}
	if m.pending != nil {
		t := *m.pending
		m.pending = nil
		return m.SetScreen(t)
	}
	return nil
}

func (m *Manager) Draw(dst *ebiten.Image) {
	if m.current != nil {
		m.current.Draw(dst)
	}
}

func (m *Manager) Resize(w, h int) {
	m.width, m.height = w, h
	if m.current != nil {
		m.current.Resize(w, h)
	}
}

func (m *Manager) Pause() {
	if m.current != nil {
		m.current.Pause()
	}
}

func (m *Manager) Resume() {
	if m.current != nil {
		m.current.Resume()
	}
}

func (m *Manager) Dispose() {
	if m.current != nil {
		m.current.Hide()
		m.current.Dispose()
		m.current = nil
	}
}
