// Command preview plays every animation of one skeleton export, for checking
// assets without going through the menus.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/kandclay/assets"
	"github.com/milk9111/kandclay/skeleton"
	"github.com/milk9111/kandclay/viewport"
)

const (
	screenSize = 512
	worldSize  = 1600
)

type previewGame struct {
	data     *skeleton.Data
	skel     *skeleton.Skeleton
	state    *skeleton.AnimationState
	renderer *skeleton.Renderer
	vp       *viewport.Fit

	names   []string
	current int
	bounds  bool
}

func newPreview(data *skeleton.Data, skin string) (*previewGame, error) {
	g := &previewGame{
		data:     data,
		skel:     skeleton.NewSkeleton(data),
		state:    skeleton.NewAnimationState(data),
		renderer: skeleton.NewRenderer(),
		vp:       viewport.NewFit(worldSize, worldSize),
	}
	if skin != "" {
		if err := g.skel.SetSkin(skin); err != nil {
			return nil, err
		}
	}
	for _, a := range data.Animations {
		g.names = append(g.names, a.Name)
	}
	sort.Strings(g.names)
	g.fit()
	g.play()
	return g, nil
}

// fit scales the skeleton to 80% of the world and centres its bounding box.
func (g *previewGame) fit() {
	if g.data.Width <= 0 || g.data.Height <= 0 {
		g.skel.SetPosition(worldSize/2, worldSize/2)
		return
	}
	s := min(worldSize*0.8/g.data.Width, worldSize*0.8/g.data.Height)
	g.skel.SetScale(s, s)
	g.skel.SetPosition(worldSize/2-(g.data.X+g.data.Width/2)*s, worldSize/2-(g.data.Y+g.data.Height/2)*s)
}

func (g *previewGame) play() {
	g.skel.SetToSetupPose()
	g.state.ClearTracks()
	if len(g.names) == 0 {
		return
	}
	name := g.names[g.current]
	if _, err := g.state.SetAnimation(0, name, true); err != nil {
		log.Printf("preview: %v", err)
	}
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight) && len(g.names) > 0:
		g.current = (g.current + 1) % len(g.names)
		g.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft) && len(g.names) > 0:
		g.current = (g.current + len(g.names) - 1) % len(g.names)
		g.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.bounds = !g.bounds
	}

	g.state.Update(1 / float32(ebiten.TPS()))
	g.state.Apply(g.skel)
	g.skel.UpdateWorldTransform()
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	g.renderer.Draw(screen, g.skel, g.vp.GeoM())

	if g.bounds {
		r := g.skel.Bounds()
		x0, y0 := g.vp.Project(r.X, r.Y+r.H)
		x1, y1 := g.vp.Project(r.X+r.W, r.Y)
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, color.White, false)
	}

	label := "(no animations)"
	if len(g.names) > 0 {
		label = fmt.Sprintf("%s  [%d/%d]  left/right to switch, B for bounds", g.names[g.current], g.current+1, len(g.names))
	}
	ebitenutil.DebugPrint(screen, label)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.vp.Update(screenSize, screenSize, true)
	return screenSize, screenSize
}

func main() {
	atlasPath := flag.String("atlas", "spine/kandclay.atlas", "atlas path under assets/")
	jsonPath := flag.String("json", "spine/menu.json", "skeleton json path under assets/")
	skin := flag.String("skin", "", "skin to show")
	disk := flag.Bool("disk", true, "prefer files under ./assets over the embedded copies")
	flag.Parse()

	assets.SetDiskOverride(*disk)
	m := assets.NewManager()
	defer m.Dispose()

	data, err := m.Skeleton(*atlasPath, *jsonPath)
	if err != nil {
		log.Fatal(err)
	}
	g, err := newPreview(data, *skin)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenSize, screenSize)
	ebiten.SetWindowTitle("Skeleton Preview: " + data.Name)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
