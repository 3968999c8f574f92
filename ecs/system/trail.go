package system

import (
	"log"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/kandclay/common"
	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
	"github.com/milk9111/kandclay/skeleton"
)

// TrailSystem leaves a coloured dot under the pointer whenever it moves and
// removes each dot once its one-shot animation has played.
type TrailSystem struct {
	Debug bool
}

func NewTrailSystem(debug bool) *TrailSystem {
	return &TrailSystem{Debug: debug}
}

func (s *TrailSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if _, p, ok := ecs.First(w, component.PointerComponent.Kind()); ok && p.Moved {
		ecs.ForEach(w, component.TrailEmitterComponent.Kind(), func(_ ecs.Entity, em *component.TrailEmitter) {
			s.spawn(w, em, p.X, p.Y)
		})
	}

	dt := float32(w.Delta())
	ecs.ForEach(w, component.TrailDotComponent.Kind(), func(e ecs.Entity, dot *component.TrailDot) {
		dot.State.Update(dt)
		dot.State.Apply(dot.Skeleton)
		dot.Skeleton.UpdateWorldTransform()

		cur := dot.State.Current(0)
		if cur == nil || cur.IsComplete() {
			ecs.DestroyEntity(w, e)
		}
	})
}

func (s *TrailSystem) spawn(w *ecs.World, em *component.TrailEmitter, px, py int) {
	if em.Spec == nil || em.Data == nil || em.Viewport == nil {
		return
	}
	random := em.Rand
	if random == nil {
		random = rand.Float32
	}

	x, y := em.Viewport.Unproject(float32(px), float32(py))
	spec := em.Spec

	skel := skeleton.NewSkeleton(em.Data)
	r, g, b := common.HSVToRGB(float32(em.Hue), spec.Saturation, spec.Value)
	skel.SetColor(mgl32.Vec4{r, g, b, spec.Alpha})
	scale := common.Lerp(spec.MinScale, spec.MaxScale, random())
	skel.SetScale(scale, scale)
	skel.SetPosition(x, y)
	if root := skel.RootBone(); root != nil {
		root.Rotation = float32(int(random() * float32(spec.MaxRotation+1)))
	}

	state := skeleton.NewAnimationState(em.Data)
	if _, err := state.SetAnimation(0, spec.Skeleton.Animation, false); err != nil {
		log.Printf("trail: %v", err)
		return
	}
	state.Apply(skel)
	skel.UpdateWorldTransform()

	em.Hue = (em.Hue + 1) % max(spec.Hues, 1)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TrailDotComponent.Kind(), &component.TrailDot{Skeleton: skel, State: state, X: x, Y: y}); err != nil {
		log.Printf("trail: %v", err)
		return
	}
	if s.Debug {
		log.Printf("trail: dot %v at (%.0f, %.0f) hue %d", e, x, y, em.Hue)
	}
}
