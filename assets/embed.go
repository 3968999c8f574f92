package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.png spine sounds
var assetsFS embed.FS

// Standard asset paths.
const (
	Background = "background.png"
	Cursor     = "cursor.png"
	ClickSound = "sounds/click.wav"
)

var diskOverride atomic.Bool

// SetDiskOverride makes loaders prefer files under ./assets over the
// embedded copies, so edited files are picked up without a rebuild.
func SetDiskOverride(on bool) {
	diskOverride.Store(on)
}

// LoadFile loads an asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if diskOverride.Load() {
		if b, err := os.ReadFile(filepath.Join("assets", filepath.FromSlash(clean))); err == nil {
			return b, nil
		}
	}
	return assetsFS.ReadFile(clean)
}

// LoadImage loads an asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadAudio decodes a wav or ogg asset into PCM at the context's sample
// rate. Other files are assumed to already be PCM in ebiten's format.
func LoadAudio(ctx *audio.Context, path string) ([]byte, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	clean := strings.ToLower(cleanAssetPath(path))
	reader := bytes.NewReader(b)

	var stream io.Reader
	switch {
	case strings.HasSuffix(clean, ".wav"):
		s, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		stream = s
	case strings.HasSuffix(clean, ".ogg"):
		s, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %q: %w", path, err)
		}
		stream = s
	default:
		return b, nil
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read audio %q: %w", path, err)
	}
	return pcm, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
