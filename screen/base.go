package screen

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/kandclay/common"
	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
	"github.com/milk9111/kandclay/ecs/system"
	"github.com/milk9111/kandclay/prefabs"
	"github.com/milk9111/kandclay/skeleton"
	"github.com/milk9111/kandclay/viewport"
)

// Base is the part every screen shares: an ecs world with the standard
// systems, an Extend viewport over the base world size, a background and
// the cursor trail.
type Base struct {
	Manager  *Manager
	World    *ecs.World
	Viewport viewport.Viewport
	UI       *ebitenui.UI

	sched      *ecs.Scheduler
	trail      *system.TrailRenderSystem
	trailView  *viewport.Screen
	background *ebiten.Image
	paused     bool
}

func newBase(m *Manager, backgroundPath string) (*Base, error) {
	b := &Base{
		Manager:   m,
		World:     ecs.NewWorld(),
		Viewport:  viewport.NewExtend(common.BaseWidth, common.BaseHeight),
		trail:     system.NewTrailRenderSystem(),
		trailView: viewport.NewScreen(),
	}

	debug := false
	var player system.Player
	if m.Services != nil {
		debug = m.Services.Debug
		if m.Services.Sound != nil {
			player = m.Services.Sound
		}
	}
	b.sched = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewHoverSystem(),
		system.NewClickSystem(),
		system.NewSkeletonAnimationSystem(),
		system.NewTrailSystem(debug),
		system.NewSoundSystem(player),
		system.NewSkeletonRenderSystem(),
		system.NewDebugBoundsSystem(debug),
	)

	if backgroundPath != "" && m.Services != nil && m.Services.Assets != nil {
		img, err := m.Services.Assets.Image(backgroundPath)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		b.background = img
	}

	if err := b.addTrail(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Base) addTrail() error {
	if b.Manager.Services == nil || b.Manager.Services.Assets == nil {
		return nil
	}
	spec, err := prefabs.LoadTrailSpec()
	if err != nil {
		return err
	}
	data, err := b.Manager.Services.Assets.Skeleton(spec.Skeleton.Atlas, spec.Skeleton.JSON)
	if err != nil {
		return fmt.Errorf("trail: %w", err)
	}
	em := &component.TrailEmitter{Spec: spec, Data: data, Viewport: b.trailView}
	return ecs.Add(b.World, ecs.CreateEntity(b.World), component.TrailEmitterComponent.Kind(), em)
}

func (b *Base) Debug() bool {
	return b.Manager.Services != nil && b.Manager.Services.Debug
}

func (b *Base) Show() error {
	return nil
}

// Update steps the world and the widgets unless the screen is paused.
func (b *Base) Update(dt float64) error {
	if b.paused {
		return nil
	}
	b.sched.Update(b.World, dt)
	if b.UI != nil {
		b.UI.Update()
	}
	return nil
}

func (b *Base) Draw(dst *ebiten.Image) {
	dst.Fill(color.Black)
	if b.background != nil {
		bw, bh := b.background.Bounds().Dx(), b.background.Bounds().Dy()
		sw, sh := dst.Bounds().Dx(), dst.Bounds().Dy()
		if bw > 0 && bh > 0 {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(sw)/float64(bw), float64(sh)/float64(bh))
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(b.background, op)
		}
	}
	b.sched.Draw(b.World, dst)
	if b.UI != nil {
		b.UI.Draw(dst)
	}
	b.trail.Draw(b.World, dst)
}

func (b *Base) Resize(w, h int) {
	b.Viewport.Update(w, h, true)
	b.trailView.Update(w, h, true)
	cam := b.Viewport.Camera()
	log.Printf("screen: resize %dx%d world %.0fx%.0f camera (%.0f, %.0f)", w, h, b.Viewport.WorldWidth(), b.Viewport.WorldHeight(), cam.X, cam.Y)
}

func (b *Base) Pause() {
	b.paused = true
}

func (b *Base) Resume() {
	b.paused = false
}

func (b *Base) Paused() bool {
	return b.paused
}

func (b *Base) Hide() {}

func (b *Base) Dispose() {
	ecs.Clear(b.World)
	b.UI = nil
}

// loadSkeleton fetches shared skeleton data through the asset manager.
func (b *Base) loadSkeleton(spec prefabs.SkeletonSpec) (*skeleton.Data, error) {
	if b.Manager.Services == nil || b.Manager.Services.Assets == nil {
		return nil, fmt.Errorf("no asset manager")
	}
	return b.Manager.Services.Assets.Skeleton(spec.Atlas, spec.JSON)
}

// addSkeleton creates an entity drawing a fresh instance of data through vps.
func (b *Base) addSkeleton(data *skeleton.Data, layer int, vps ...viewport.Viewport) (ecs.Entity, *component.SkeletonView, error) {
	view := &component.SkeletonView{
		Skeleton:  skeleton.NewSkeleton(data),
		State:     skeleton.NewAnimationState(data),
		TimeScale: 1,
		Viewports: vps,
	}
	e := ecs.CreateEntity(b.World)
	if err := ecs.Add(b.World, e, component.SkeletonViewComponent.Kind(), view); err != nil {
		return 0, nil, err
	}
	if err := ecs.Add(b.World, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, nil, err
	}
	if err := ecs.Add(b.World, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return 0, nil, err
	}
	return e, view, nil
}

// SkeletonScale returns the uniform scale that fits data inside the given
// fraction of the viewport's world size. Missing data or a zero-sized
// skeleton yields 0.
func SkeletonScale(data *skeleton.Data, wPct, hPct float32, vp viewport.Viewport) float32 {
	if data == nil || vp == nil || data.Width <= 0 || data.Height <= 0 {
		return 0
	}
	return min(vp.WorldWidth()*wPct/data.Width, vp.WorldHeight()*hPct/data.Height)
}

// SetSkeletonScale sizes t like SkeletonScale. It leaves t alone when no
// scale can be computed.
func SetSkeletonScale(t *component.Transform, data *skeleton.Data, wPct, hPct float32, vp viewport.Viewport) {
	if t == nil {
		return
	}
	if s := SkeletonScale(data, wPct, hPct, vp); s > 0 {
		t.ScaleX, t.ScaleY = s, s
	}
}

// SetSkeletonPosition places t so the skeleton's bounding box is centred
// on (cx, cy).
func SetSkeletonPosition(t *component.Transform, data *skeleton.Data, cx, cy float32) {
	if t == nil || data == nil {
		return
	}
	t.X = cx - (data.X+data.Width/2)*t.ScaleX
	t.Y = cy - (data.Y+data.Height/2)*t.ScaleY
}

// SetSkeletonTopLeft places t so the skeleton's bounding box has its
// top-left corner at (left, top).
func SetSkeletonTopLeft(t *component.Transform, data *skeleton.Data, left, top float32) {
	if t == nil || data == nil {
		return
	}
	t.X = left - data.X*t.ScaleX
	t.Y = top - (data.Y+data.Height)*t.ScaleY
}

// worldCenter is the camera position of vp.
func worldCenter(vp viewport.Viewport) (float32, float32) {
	cam := vp.Camera()
	return cam.X, cam.Y
}

// worldTopLeft is the world point at the top-left corner of vp.
func worldTopLeft(vp viewport.Viewport) (float32, float32) {
	cam := vp.Camera()
	return cam.X - vp.WorldWidth()/2, cam.Y + vp.WorldHeight()/2
}
