package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/kandclay/common"
	"github.com/milk9111/kandclay/prefs"
	"github.com/milk9111/kandclay/screen"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	startScreen := flag.String("screen", "menu", "screen to start on: menu, main or settings")
	prefsPath := flag.String("prefs", "", "preferences file (defaults to the user config dir)")
	watch := flag.Bool("watch", false, "reload assets and prefabs from disk when they change")
	flag.Parse()

	start, err := screen.ParseType(*startScreen)
	if err != nil {
		log.Fatal(err)
	}
	if *prefsPath == "" {
		if *prefsPath, err = prefs.DefaultPath(); err != nil {
			log.Printf("prefs: %v; preferences will not be saved", err)
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth/2, common.BaseHeight/2)
	ebiten.SetWindowTitle(common.Title)

	game, err := NewGame(Config{Debug: *debug, Start: start, PrefsPath: *prefsPath, Watch: *watch})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetCursorMode(game.cursor.Mode())

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
