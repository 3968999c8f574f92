package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
	"github.com/milk9111/kandclay/skeleton"
	"github.com/milk9111/kandclay/viewport"
)

// SkeletonRenderSystem draws every SkeletonView through each of its
// viewports, clipped to the viewport's screen bounds, then its captions.
type SkeletonRenderSystem struct {
	renderer *skeleton.Renderer
	face     *text.GoXFace
}

func NewSkeletonRenderSystem() *SkeletonRenderSystem {
	return &SkeletonRenderSystem{
		renderer: skeleton.NewRenderer(),
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *SkeletonRenderSystem) Update(*ecs.World) {}

func (r *SkeletonRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	entities := ecs.Query(w, component.SkeletonViewComponent.Kind().ID())
	sort.SliceStable(entities, func(i, j int) bool {
		return layerOf(w, entities[i]) < layerOf(w, entities[j])
	})

	for _, e := range entities {
		view, ok := ecs.Get(w, e, component.SkeletonViewComponent.Kind())
		if !ok || view.Skeleton == nil {
			continue
		}
		captions, hasCaptions := ecs.Get(w, e, component.CaptionsComponent.Kind())
		for _, vp := range view.Viewports {
			dst := clip(screen, vp)
			if dst == nil {
				continue
			}
			r.renderer.Draw(dst, view.Skeleton, vp.GeoM())
			if hasCaptions {
				r.drawCaptions(dst, view, captions, vp)
			}
		}
	}
}

func (r *SkeletonRenderSystem) drawCaptions(dst *ebiten.Image, view *component.SkeletonView, c *component.Captions, vp viewport.Viewport) {
	if vp.WorldHeight() == 0 {
		return
	}
	pxPerUnit := float64(vp.ScreenBounds().Dy()) / float64(vp.WorldHeight())
	scale := float64(c.Height) * pxPerUnit / r.face.Metrics().HAscent
	if scale <= 0 {
		return
	}
	col := c.Color
	if col == nil {
		col = color.White
	}

	for _, item := range c.Items {
		bounds := view.Skeleton.SlotBounds(item.Slot)
		if bounds.Empty() {
			continue
		}
		cx, cy := vp.Project(bounds.X+bounds.W/2, bounds.Y+bounds.H/2)

		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(cx), float64(cy))
		op.ColorScale.ScaleWithColor(col)
		text.Draw(dst, item.Text, r.face, op)
	}
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return l.Index
	}
	return 0
}

func clip(screen *ebiten.Image, vp viewport.Viewport) *ebiten.Image {
	if vp == nil {
		return nil
	}
	b := vp.ScreenBounds()
	if b.Empty() {
		return nil
	}
	sub, ok := screen.SubImage(b).(*ebiten.Image)
	if !ok {
		return nil
	}
	return sub
}

// TrailRenderSystem draws trail dots through the emitter's viewport.
type TrailRenderSystem struct {
	renderer *skeleton.Renderer
}

func NewTrailRenderSystem() *TrailRenderSystem {
	return &TrailRenderSystem{renderer: skeleton.NewRenderer()}
}

func (r *TrailRenderSystem) Update(*ecs.World) {}

func (r *TrailRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	_, em, ok := ecs.First(w, component.TrailEmitterComponent.Kind())
	if !ok || em.Viewport == nil {
		return
	}
	geo := em.Viewport.GeoM()
	ecs.ForEach(w, component.TrailDotComponent.Kind(), func(_ ecs.Entity, dot *component.TrailDot) {
		r.renderer.Draw(screen, dot.Skeleton, geo)
	})
}
