package skeleton

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/kandclay/common"
)

// Timeline sets keyed properties of a skeleton for an animation time.
// Properties a timeline does not key are left untouched.
type Timeline interface {
	Apply(s *Skeleton, time float32)
	Duration() float32
}

type RotateTimeline struct {
	keyframes
	Bone   int
	Angles []float32
}

func (tl *RotateTimeline) Duration() float32 { return tl.last() }

func (tl *RotateTimeline) Apply(s *Skeleton, time float32) {
	i, p := tl.locate(time)
	if i < 0 {
		return
	}
	b := s.Bones[tl.Bone]
	r := tl.Angles[i]
	if p > 0 {
		r += wrapDegrees(tl.Angles[i+1]-r) * tl.percent(i, 0, p)
	}
	b.Rotation = b.Data.Rotation + r
}

// wrapDegrees brings a rotation delta into [-180, 180] so keys take the short way round.
func wrapDegrees(d float32) float32 {
	d = float32(math.Mod(float64(d), 360))
	switch {
	case d > 180:
		d -= 360
	case d < -180:
		d += 360
	}
	return d
}

type TranslateTimeline struct {
	keyframes
	Bone   int
	Values []mgl32.Vec2
}

func (tl *TranslateTimeline) Duration() float32 { return tl.last() }

func (tl *TranslateTimeline) Apply(s *Skeleton, time float32) {
	v, ok := lerpVec2(&tl.keyframes, tl.Values, time)
	if !ok {
		return
	}
	b := s.Bones[tl.Bone]
	b.X = b.Data.X + v.X()
	b.Y = b.Data.Y + v.Y()
}

// ScaleTimeline keys multipliers of the setup scale.
type ScaleTimeline struct {
	keyframes
	Bone   int
	Values []mgl32.Vec2
}

func (tl *ScaleTimeline) Duration() float32 { return tl.last() }

func (tl *ScaleTimeline) Apply(s *Skeleton, time float32) {
	v, ok := lerpVec2(&tl.keyframes, tl.Values, time)
	if !ok {
		return
	}
	b := s.Bones[tl.Bone]
	b.ScaleX = b.Data.ScaleX * v.X()
	b.ScaleY = b.Data.ScaleY * v.Y()
}

func lerpVec2(k *keyframes, values []mgl32.Vec2, time float32) (mgl32.Vec2, bool) {
	i, p := k.locate(time)
	if i < 0 {
		return mgl32.Vec2{}, false
	}
	v := values[i]
	if p > 0 {
		n := values[i+1]
		v = mgl32.Vec2{
			common.Lerp(v.X(), n.X(), k.percent(i, 0, p)),
			common.Lerp(v.Y(), n.Y(), k.percent(i, 1, p)),
		}
	}
	return v, true
}

// AttachmentTimeline swaps a slot's attachment by name. An empty name clears it.
type AttachmentTimeline struct {
	keyframes
	Slot  int
	Names []string
}

func (tl *AttachmentTimeline) Duration() float32 { return tl.last() }

func (tl *AttachmentTimeline) Apply(s *Skeleton, time float32) {
	i, _ := tl.locate(time)
	if i < 0 {
		return
	}
	slot := s.Slots[tl.Slot]
	slot.setAttachment(tl.Names[i], s.attachmentFor(tl.Slot, tl.Names[i]))
}

type ColorTimeline struct {
	keyframes
	Slot   int
	Colors []mgl32.Vec4
}

func (tl *ColorTimeline) Duration() float32 { return tl.last() }

func (tl *ColorTimeline) Apply(s *Skeleton, time float32) {
	i, p := tl.locate(time)
	if i < 0 {
		return
	}
	c := tl.Colors[i]
	if p > 0 {
		n := tl.Colors[i+1]
		for j := range c {
			c[j] = common.Lerp(c[j], n[j], tl.percent(i, j, p))
		}
	}
	s.Slots[tl.Slot].Color = c
}

// Event is a keyed occurrence fired through the animation state listeners.
type Event struct {
	Data   *EventData
	Time   float32
	Int    int
	Float  float32
	String string
}

// EventTimeline does not pose the skeleton; events are collected by the
// animation state while time advances.
type EventTimeline struct {
	Events []Event
}

func (tl *EventTimeline) Duration() float32 {
	if len(tl.Events) == 0 {
		return 0
	}
	return tl.Events[len(tl.Events)-1].Time
}

func (tl *EventTimeline) Apply(*Skeleton, float32) {}

// fired appends the events with from < time <= to, or from <= time when inclusive.
func (tl *EventTimeline) fired(from, to float32, inclusive bool, out []Event) []Event {
	for _, e := range tl.Events {
		if (e.Time > from || (inclusive && e.Time == from)) && e.Time <= to {
			out = append(out, e)
		}
	}
	return out
}

type Animation struct {
	Name      string
	Duration  float32
	Timelines []Timeline
	events    *EventTimeline
}

func NewAnimation(name string, timelines []Timeline) *Animation {
	a := &Animation{Name: name, Timelines: timelines}
	for _, tl := range timelines {
		a.Duration = max(a.Duration, tl.Duration())
		if et, ok := tl.(*EventTimeline); ok {
			a.events = et
		}
	}
	return a
}

// Apply poses s at time. Looping animations wrap time by the duration.
func (a *Animation) Apply(s *Skeleton, time float32, loop bool) {
	if loop && a.Duration > 0 {
		time = common.Wrap(time, a.Duration)
	}
	for _, tl := range a.Timelines {
		tl.Apply(s, time)
	}
}
