package skeleton

import (
	"fmt"
	"math"
)

// Listener receives track entry lifecycle callbacks. Nil funcs are skipped.
type Listener struct {
	Start     func(e *TrackEntry)
	Interrupt func(e *TrackEntry)
	End       func(e *TrackEntry)
	Dispose   func(e *TrackEntry)
	Complete  func(e *TrackEntry)
	Event     func(e *TrackEntry, ev Event)
}

// TrackEntry is an animation playing on one track.
type TrackEntry struct {
	Animation  *Animation
	TrackIndex int
	Loop       bool
	// TrackTime is the time in seconds since the entry started. Writing it
	// scrubs the animation.
	TrackTime float32
	TimeScale float32

	listener *Listener
	started  bool
}

func (e *TrackEntry) SetListener(l Listener) {
	e.listener = &l
}

// IsComplete reports whether at least one full pass of the animation has played.
func (e *TrackEntry) IsComplete() bool {
	return e.TrackTime >= e.Animation.Duration
}

// AnimationTime is TrackTime mapped into the animation, wrapped when looping
// and held at the end otherwise.
func (e *TrackEntry) AnimationTime() float32 {
	d := e.Animation.Duration
	if e.Loop && d > 0 {
		return float32(math.Mod(float64(e.TrackTime), float64(d)))
	}
	return min(e.TrackTime, d)
}

type stateEventKind uint8

const (
	eventStart stateEventKind = iota
	eventInterrupt
	eventEnd
	eventDispose
	eventComplete
	eventUser
)

type stateEvent struct {
	kind  stateEventKind
	entry *TrackEntry
	event Event
}

// AnimationState plays animations on numbered tracks. Higher tracks are
// applied after lower ones and win where they key the same property.
type AnimationState struct {
	Data      *Data
	TimeScale float32

	tracks    []*TrackEntry
	listeners []Listener
	queue     []stateEvent
	draining  bool
}

func NewAnimationState(data *Data) *AnimationState {
	return &AnimationState{Data: data, TimeScale: 1}
}

func (s *AnimationState) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *AnimationState) Current(track int) *TrackEntry {
	if track < 0 || track >= len(s.tracks) {
		return nil
	}
	return s.tracks[track]
}

func (s *AnimationState) Tracks() []*TrackEntry {
	return s.tracks
}

// SetAnimation replaces whatever plays on track with the named animation.
// The replaced entry is interrupted, ended and disposed before the new one starts.
func (s *AnimationState) SetAnimation(track int, name string, loop bool) (*TrackEntry, error) {
	a := s.Data.FindAnimation(name)
	if a == nil {
		return nil, fmt.Errorf("skeleton %s: animation %q not found", s.Data.Name, name)
	}
	return s.SetAnimationRef(track, a, loop), nil
}

func (s *AnimationState) SetAnimationRef(track int, a *Animation, loop bool) *TrackEntry {
	for len(s.tracks) <= track {
		s.tracks = append(s.tracks, nil)
	}
	if cur := s.tracks[track]; cur != nil {
		s.enqueue(stateEvent{kind: eventInterrupt, entry: cur})
		s.enqueue(stateEvent{kind: eventEnd, entry: cur})
		s.enqueue(stateEvent{kind: eventDispose, entry: cur})
	}
	e := &TrackEntry{Animation: a, TrackIndex: track, Loop: loop, TimeScale: 1}
	s.tracks[track] = e
	s.enqueue(stateEvent{kind: eventStart, entry: e})
	s.drain()
	return e
}

func (s *AnimationState) ClearTrack(track int) {
	cur := s.Current(track)
	if cur == nil {
		return
	}
	s.tracks[track] = nil
	s.enqueue(stateEvent{kind: eventEnd, entry: cur})
	s.enqueue(stateEvent{kind: eventDispose, entry: cur})
	s.drain()
}

func (s *AnimationState) ClearTracks() {
	for i := range s.tracks {
		s.ClearTrack(i)
	}
	s.tracks = s.tracks[:0]
}

// Update advances every track by delta seconds and fires keyed events and
// completions. Callbacks run after all tracks have advanced.
func (s *AnimationState) Update(delta float32) {
	delta *= s.TimeScale
	for _, e := range s.tracks {
		if e == nil {
			continue
		}
		prev := e.TrackTime
		e.TrackTime += delta * e.TimeScale
		first := !e.started
		e.started = true
		s.collect(e, prev, first)
	}
	s.drain()
}

func (s *AnimationState) collect(e *TrackEntry, prev float32, first bool) {
	d := e.Animation.Duration
	now := e.TrackTime

	if et := e.Animation.events; et != nil {
		var fired []Event
		switch {
		case e.Loop && d > 0:
			for k := math.Floor(float64(prev / d)); k <= math.Floor(float64(now/d)); k++ {
				base := float32(k) * d
				fired = et.fired(prev-base, now-base, first && k == 0, fired)
			}
		default:
			fired = et.fired(prev, min(now, d), first, fired)
		}
		for _, ev := range fired {
			s.enqueue(stateEvent{kind: eventUser, entry: e, event: ev})
		}
	}

	switch {
	case d == 0:
		if first {
			s.enqueue(stateEvent{kind: eventComplete, entry: e})
		}
	case e.Loop:
		if math.Floor(float64(now/d)) > math.Floor(float64(prev/d)) {
			s.enqueue(stateEvent{kind: eventComplete, entry: e})
		}
	case prev < d && now >= d:
		s.enqueue(stateEvent{kind: eventComplete, entry: e})
	}
}

// Apply poses skel with every track's current animation time.
func (s *AnimationState) Apply(skel *Skeleton) bool {
	applied := false
	for _, e := range s.tracks {
		if e == nil {
			continue
		}
		e.Animation.Apply(skel, e.AnimationTime(), false)
		applied = true
	}
	return applied
}

func (s *AnimationState) enqueue(ev stateEvent) {
	s.queue = append(s.queue, ev)
}

// drain dispatches queued callbacks. Callbacks may change tracks; events
// they cause are dispatched by the same drain.
func (s *AnimationState) drain() {
	if s.draining {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()

	for len(s.queue) > 0 {
		ev := s.queue[0]
		s.queue = s.queue[1:]
		if ev.entry.listener != nil {
			ev.dispatch(*ev.entry.listener)
		}
		for _, l := range s.listeners {
			ev.dispatch(l)
		}
	}
}

func (ev stateEvent) dispatch(l Listener) {
	var fn func(*TrackEntry)
	switch ev.kind {
	case eventStart:
		fn = l.Start
	case eventInterrupt:
		fn = l.Interrupt
	case eventEnd:
		fn = l.End
	case eventDispose:
		fn = l.Dispose
	case eventComplete:
		fn = l.Complete
	case eventUser:
		if l.Event != nil {
			l.Event(ev.entry, ev.event)
		}
		return
	}
	if fn != nil {
		fn(ev.entry)
	}
}
