package ecs

// store is the type-erased view of a sparseSet the world needs when an
// entity is destroyed or queried by id.
type store interface {
	has(id entityID) bool
	remove(id entityID) bool
	size() int
	snapshot() []Entity
}

// sparseSet keeps one component per entity in a dense array indexed
// through a sparse id table.
type sparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(id entityID) (int, bool) {
	if id == 0 || int(id) > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx].id() != id {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet[T]) has(id entityID) bool {
	_, ok := s.index(id)
	return ok
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	idx, ok := s.index(id)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	id := e.id()
	if idx, ok := s.index(id); ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet[T]) remove(id entityID) bool {
	idx, ok := s.index(id)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *sparseSet[T]) size() int {
	return len(s.dense)
}

// snapshot copies the dense entity list so callers may add or remove
// components while iterating.
func (s *sparseSet[T]) snapshot() []Entity {
	out := make([]Entity, len(s.dense))
	copy(out, s.dense)
	return out
}
