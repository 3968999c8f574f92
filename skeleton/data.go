// Package skeleton is a small Spine-compatible skeletal animation runtime.
//
// It loads libGDX text atlases and the JSON export of a skeleton, poses
// bones with rotate/translate/scale timelines, swaps region attachments
// and slot colours, and draws region quads with ebiten.
package skeleton

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdditive
	BlendMultiply
	BlendScreen
)

func parseBlendMode(s string) (BlendMode, error) {
	switch s {
	case "", "normal":
		return BlendNormal, nil
	case "additive":
		return BlendAdditive, nil
	case "multiply":
		return BlendMultiply, nil
	case "screen":
		return BlendScreen, nil
	}
	return BlendNormal, errors.Errorf("unknown blend mode %q", s)
}

// BoneData is the setup pose of a bone.
type BoneData struct {
	Index  int
	Name   string
	Parent *BoneData
	Length float32

	X, Y           float32
	Rotation       float32
	ScaleX, ScaleY float32
}

// SlotData is the setup state of a slot. Slots are drawn in index order.
type SlotData struct {
	Index      int
	Name       string
	Bone       *BoneData
	Color      mgl32.Vec4
	Attachment string
	Blend      BlendMode
}

// Skin maps (slot, attachment name) pairs to attachments.
type Skin struct {
	Name        string
	attachments map[skinKey]*RegionAttachment
}

type skinKey struct {
	slot int
	name string
}

func NewSkin(name string) *Skin {
	return &Skin{Name: name, attachments: make(map[skinKey]*RegionAttachment)}
}

func (s *Skin) SetAttachment(slot int, name string, a *RegionAttachment) {
	s.attachments[skinKey{slot: slot, name: name}] = a
}

func (s *Skin) Attachment(slot int, name string) *RegionAttachment {
	if s == nil {
		return nil
	}
	return s.attachments[skinKey{slot: slot, name: name}]
}

// EventData names an event keyed by animations.
type EventData struct {
	Name   string
	Int    int
	Float  float32
	String string
}

// Data is the shared, immutable part of a skeleton. Any number of
// Skeleton instances can be created from one Data.
type Data struct {
	Name          string
	X, Y          float32
	Width, Height float32

	Bones       []*BoneData
	Slots       []*SlotData
	Skins       []*Skin
	DefaultSkin *Skin
	Events      []*EventData
	Animations  []*Animation
}

func (d *Data) FindBone(name string) *BoneData {
	for _, b := range d.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (d *Data) FindSlot(name string) *SlotData {
	for _, s := range d.Slots {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (d *Data) FindSkin(name string) *Skin {
	for _, s := range d.Skins {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (d *Data) FindEvent(name string) *EventData {
	for _, e := range d.Events {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (d *Data) FindAnimation(name string) *Animation {
	for _, a := range d.Animations {
		if a.Name == name {
			return a
		}
	}
	return nil
}
