// Package sound plays short effects through the shared ebiten audio context.
package sound

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/kandclay/assets"
	"github.com/milk9111/kandclay/common"
)

const SampleRate = 44100

// DefaultVolume is used when no volume preference is stored.
const DefaultVolume = 1.0

var ErrUnknownSound = errors.New("sound: unknown sound")

// Manager owns decoded clips and the players currently sounding. The zero
// volume is silent; volume is always within [0, 1].
type Manager struct {
	mu      sync.Mutex
	ctx     *audio.Context
	clips   map[string][]byte
	playing []*audio.Player
	volume  float64

	decode func(ctx *audio.Context, path string) ([]byte, error)
}

func NewManager(volume float64) *Manager {
	return &Manager{
		clips:  make(map[string][]byte),
		volume: common.Clamp(volume, 0, 1),
		decode: assets.LoadAudio,
	}
}

func (m *Manager) context() *audio.Context {
	if m.ctx == nil {
		if m.ctx = audio.CurrentContext(); m.ctx == nil {
			m.ctx = audio.NewContext(SampleRate)
		}
	}
	return m.ctx
}

// Load decodes the asset at path and registers it under name.
func (m *Manager) Load(name, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pcm, err := m.decode(m.context(), path)
	if err != nil {
		return fmt.Errorf("sound: load %s: %w", name, err)
	}
	m.clips[name] = pcm
	return nil
}

// Play starts a new player for the named clip. Overlapping plays of the
// same clip are allowed.
func (m *Manager) Play(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pcm, ok := m.clips[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	m.prune()
	p := m.context().NewPlayerFromBytes(pcm)
	p.SetVolume(m.volume)
	p.Play()
	m.playing = append(m.playing, p)
	return nil
}

func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = common.Clamp(v, 0, 1)
	for _, p := range m.playing {
		p.SetVolume(m.volume)
	}
}

func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Close stops and releases every active player. Clips stay loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.playing {
		if err := p.Close(); err != nil {
			log.Printf("sound: close player: %v", err)
		}
	}
	m.playing = nil
}

func (m *Manager) prune() {
	kept := m.playing[:0]
	for _, p := range m.playing {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	m.playing = kept
}
