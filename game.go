package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/kandclay/assets"
	"github.com/milk9111/kandclay/prefabs"
	"github.com/milk9111/kandclay/prefs"
	"github.com/milk9111/kandclay/screen"
	"github.com/milk9111/kandclay/sound"
)

// watchDirs are the directories scanned for edits when hot reload is on.
var watchDirs = []string{"assets", "assets/spine", "assets/sounds", "prefabs"}

type Config struct {
	Debug     bool
	Start     screen.Type
	PrefsPath string
	Watch     bool
}

type Game struct {
	services *screen.Services
	screens  *screen.Manager
	cursor   *Cursor
	watcher  *assets.Watcher

	width, height int
	focused       bool
	closed        bool
}

func NewGame(cfg Config) (*Game, error) {
	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		log.Printf("prefs: %v; using defaults", err)
		store = prefs.NewMemory()
	}

	snd := sound.NewManager(store.Float(prefs.KeyVolume, sound.DefaultVolume))
	if err := snd.Load("click", assets.ClickSound); err != nil {
		log.Printf("sound: %v", err)
	}

	services := &screen.Services{
		Assets: assets.NewManager(),
		Sound:  snd,
		Prefs:  store,
		Debug:  cfg.Debug,
	}
	g := &Game{
		services: services,
		screens:  screen.NewManager(services, nil),
		focused:  true,
	}

	if g.cursor, err = NewCursor(services.Assets); err != nil {
		log.Printf("cursor: %v; keeping the system cursor", err)
	}

	if cfg.Watch {
		assets.SetDiskOverride(true)
		w, err := assets.NewWatcher(watchDirs...)
		if err != nil {
			log.Printf("watch: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.screens.SetScreen(cfg.Start); err != nil {
		return nil, fmt.Errorf("start screen: %w", err)
	}
	return g, nil
}

func (g *Game) Update() error {
	g.updateFocus()
	g.reloadChanged()

	dt := 1 / float64(ebiten.TPS())
	if err := g.screens.Update(dt); err != nil {
		return err
	}
	if g.screens.Quitting() {
		return ebiten.Termination
	}
	return nil
}

// updateFocus maps window focus changes onto Pause and Resume.
func (g *Game) updateFocus() {
	focused := ebiten.IsFocused()
	if focused == g.focused {
		return
	}
	g.focused = focused
	if focused {
		log.Printf("game: resume")
		g.screens.Resume()
	} else {
		log.Printf("game: pause")
		g.screens.Pause()
	}
}

// reloadChanged drains the watcher and rebuilds the screen when any file it
// may depend on changed.
func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if g.services.Assets.Invalidate(name) || prefabs.IsPrefab(filepath.Base(name)) {
				changed = true
			}
			continue
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
			continue
		default:
		}
		break
	}
	if !changed {
		return
	}
	if err := g.screens.Reload(); err != nil {
		log.Printf("watch: reload: %v", err)
	}
}

func (g *Game) Draw(dst *ebiten.Image) {
	g.screens.Draw(dst)
	g.cursor.Draw(dst)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.screens.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close releases the screen, audio and cached assets. It is safe to call
// more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.screens.Dispose()
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
	g.services.Sound.Close()
	g.services.Assets.Dispose()
}
