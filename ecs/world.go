package ecs

import (
	"github.com/milk9111/kandclay/ecs/component"
)

// World owns entities, their component stores and the frame's event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	delta    float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and frees its id. It reports
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities lists every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Clear destroys every entity.
func Clear(w *World) {
	for _, e := range Entities(w) {
		DestroyEntity(w, e)
	}
	w.events.Drain()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Delta is the frame time in seconds handed to the current Update.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}
