// Package component declares the data entities carry and the kinds that
// key each component store.
package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys one store in a world. Zero is never issued.
type ComponentID uint32

var lastComponentID atomic.Uint32

// ComponentKind identifies one component store. Two kinds of the same Go
// type are distinct stores.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

// NewComponentKind issues a fresh kind named after T.
func NewComponentKind[T any]() ComponentKind[T] {
	var zero T
	return ComponentKind[T]{
		id:   ComponentID(lastComponentID.Add(1)),
		name: fmt.Sprintf("%T", zero),
	}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// String names the kind in errors and logs, e.g. "component.Transform#3".
func (k ComponentKind[T]) String() string {
	if !k.Valid() {
		return "invalid kind"
	}
	return fmt.Sprintf("%s#%d", k.name, k.id)
}

// ComponentHandle is declared once per component type, next to the type,
// as the XComponent variables in this package are.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
