// Package prefs persists user preferences as a flat YAML map.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	KeyVolume          = "volume"
	KeyHairColor       = "hairColor"
	KeyCoinColor       = "coinColor"
	KeyCharacterHeight = "characterHeight"
)

// Store is a key-value preference map. Every Set writes the file through.
// A Store with an empty path keeps values in memory only.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]any
}

// DefaultPath is prefs.yaml inside the per-user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("prefs: config dir: %w", err)
	}
	return filepath.Join(dir, "kandclay", "prefs.yaml"), nil
}

// Open loads the store at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]any)}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("prefs: unmarshal %s: %w", path, err)
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return s, nil
}

func NewMemory() *Store {
	s, _ := Open("")
	return s
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Float(key string, def float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch v := s.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func (s *Store) String(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return def
}

func (s *Store) Bool(key string, def bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return def
}

func (s *Store) SetFloat(key string, v float64) error {
	return s.set(key, v)
}

func (s *Store) SetString(key, v string) error {
	return s.set(key, v)
}

func (s *Store) SetBool(key string, v bool) error {
	return s.set(key, v)
}

func (s *Store) set(key string, v any) error {
	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()
	return s.Flush()
}

// Flush writes the current values to disk, replacing the file atomically.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prefs: mkdir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("prefs: rename %s: %w", tmp, err)
	}
	return nil
}
