package ecs

import (
	"fmt"

	"github.com/milk9111/kandclay/ecs/component"
)

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		typed, _ := s.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s
}

// Add attaches or replaces the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, kind)
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %v gets %s", component.ErrEntityNotAlive, e, kind)
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	if s == nil || !IsAlive(w, e) {
		return false
	}
	return s.remove(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s := storeFor(w, kind, false)
	if s == nil || !IsAlive(w, e) {
		return nil, false
	}
	return s.get(e.id())
}

// First returns the lowest-indexed live entity carrying kind. Singleton
// components like the pointer are looked up this way.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	s := storeFor(w, kind, false)
	if s == nil || s.size() == 0 {
		return 0, nil, false
	}
	best := -1
	for i, e := range s.dense {
		if !IsAlive(w, e) {
			continue
		}
		if best < 0 || e.id() < s.dense[best].id() {
			best = i
		}
	}
	if best < 0 {
		return 0, nil, false
	}
	return s.dense[best], s.values[best], true
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil {
		return
	}
	for _, e := range s.snapshot() {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := Get(w, e, kc); ok {
			fn(e, a, b, c)
		}
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		if d, ok := Get(w, e, kd); ok {
			fn(e, a, b, c, d)
		}
	})
}
