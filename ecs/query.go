package ecs

import (
	"sort"

	"github.com/milk9111/kandclay/ecs/component"
)

// Query returns the live entities that carry every listed component id,
// in id order.
func Query(w *World, ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	sets := make([]store, 0, len(ids))
	for _, id := range ids {
		s, ok := w.stores[id]
		if !ok {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate the smallest set
	sort.Slice(sets, func(i, j int) bool { return sets[i].size() < sets[j].size() })

	var out []Entity
	for _, e := range sets[0].snapshot() {
		if !w.entities.isAlive(e) {
			continue
		}
		matched := true
		for _, s := range sets[1:] {
			if !s.has(e.id()) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}
