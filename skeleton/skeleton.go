package skeleton

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/kandclay/common"
)

// Bone is the posed instance of a BoneData. Mat and World hold the
// bone-to-world transform computed by Skeleton.UpdateWorldTransform.
type Bone struct {
	Data     *BoneData
	Parent   *Bone
	Children []*Bone

	X, Y           float32
	Rotation       float32
	ScaleX, ScaleY float32

	Mat   mgl32.Mat2
	World mgl32.Vec2
}

func (b *Bone) SetToSetupPose() {
	d := b.Data
	b.X, b.Y = d.X, d.Y
	b.Rotation = d.Rotation
	b.ScaleX, b.ScaleY = d.ScaleX, d.ScaleY
}

// WorldRotation returns the bone's world rotation in degrees.
func (b *Bone) WorldRotation() float32 {
	return float32(math.Atan2(float64(b.Mat.At(1, 0)), float64(b.Mat.At(0, 0))) * 180 / math.Pi)
}

func (b *Bone) LocalToWorld(x, y float32) (float32, float32) {
	v := b.Mat.Mul2x1(mgl32.Vec2{x, y}).Add(b.World)
	return v.X(), v.Y()
}

func localMat(rotation, sx, sy float32) mgl32.Mat2 {
	return mgl32.Rotate2D(common.Deg2Rad(rotation)).Mul2(mgl32.Diag2(mgl32.Vec2{sx, sy}))
}

type Slot struct {
	Data  *SlotData
	Bone  *Bone
	Color mgl32.Vec4

	attachmentName string
	attachment     *RegionAttachment
}

func (s *Slot) Attachment() *RegionAttachment {
	return s.attachment
}

func (s *Slot) AttachmentName() string {
	return s.attachmentName
}

func (s *Slot) setAttachment(name string, a *RegionAttachment) {
	s.attachmentName = name
	s.attachment = a
}

// WorldVertices returns the transformed corners of the slot's region
// attachment, or nil when the slot shows nothing.
func (s *Slot) WorldVertices() []float32 {
	if s == nil || s.attachment == nil || s.Bone == nil {
		return nil
	}
	return s.attachment.ComputeWorldVertices(s.Bone, make([]float32, 0, 8))
}

// Skeleton is a posable instance of Data.
type Skeleton struct {
	Data  *Data
	Bones []*Bone
	Slots []*Slot
	Skin  *Skin

	X, Y           float32
	ScaleX, ScaleY float32
	Color          mgl32.Vec4
}

func NewSkeleton(data *Data) *Skeleton {
	s := &Skeleton{
		Data:   data,
		ScaleX: 1,
		ScaleY: 1,
		Color:  common.White,
	}
	s.Bones = make([]*Bone, len(data.Bones))
	for i, bd := range data.Bones {
		b := &Bone{Data: bd}
		if bd.Parent != nil {
			b.Parent = s.Bones[bd.Parent.Index]
			b.Parent.Children = append(b.Parent.Children, b)
		}
		s.Bones[i] = b
	}
	s.Slots = make([]*Slot, len(data.Slots))
	for i, sd := range data.Slots {
		s.Slots[i] = &Slot{Data: sd, Bone: s.Bones[sd.Bone.Index]}
	}
	s.SetToSetupPose()
	s.UpdateWorldTransform()
	return s
}

func (s *Skeleton) RootBone() *Bone {
	if len(s.Bones) == 0 {
		return nil
	}
	return s.Bones[0]
}

func (s *Skeleton) FindBone(name string) *Bone {
	for _, b := range s.Bones {
		if b.Data.Name == name {
			return b
		}
	}
	return nil
}

func (s *Skeleton) FindSlot(name string) *Slot {
	for _, sl := range s.Slots {
		if sl.Data.Name == name {
			return sl
		}
	}
	return nil
}

func (s *Skeleton) SetPosition(x, y float32) {
	s.X, s.Y = x, y
}

func (s *Skeleton) SetScale(sx, sy float32) {
	s.ScaleX, s.ScaleY = sx, sy
}

func (s *Skeleton) SetColor(c mgl32.Vec4) {
	s.Color = c
}

func (s *Skeleton) SetToSetupPose() {
	s.SetBonesToSetupPose()
	s.SetSlotsToSetupPose()
}

func (s *Skeleton) SetBonesToSetupPose() {
	for _, b := range s.Bones {
		b.SetToSetupPose()
	}
}

func (s *Skeleton) SetSlotsToSetupPose() {
	for i, sl := range s.Slots {
		sl.Color = sl.Data.Color
		name := sl.Data.Attachment
		sl.setAttachment(name, s.attachmentFor(i, name))
	}
}

// UpdateWorldTransform recomputes every bone's world transform. Bones are
// stored parent first, so one pass is enough.
func (s *Skeleton) UpdateWorldTransform() {
	skelMat := mgl32.Diag2(mgl32.Vec2{s.ScaleX, s.ScaleY})
	for _, b := range s.Bones {
		local := localMat(b.Rotation, b.ScaleX, b.ScaleY)
		if b.Parent == nil {
			b.World = skelMat.Mul2x1(mgl32.Vec2{b.X, b.Y}).Add(mgl32.Vec2{s.X, s.Y})
			b.Mat = skelMat.Mul2(local)
			continue
		}
		p := b.Parent
		b.World = p.Mat.Mul2x1(mgl32.Vec2{b.X, b.Y}).Add(p.World)
		b.Mat = p.Mat.Mul2(local)
	}
}

func (s *Skeleton) attachmentFor(slot int, name string) *RegionAttachment {
	if name == "" {
		return nil
	}
	if a := s.Skin.Attachment(slot, name); a != nil {
		return a
	}
	return s.Data.DefaultSkin.Attachment(slot, name)
}

// SetSkin switches to the named skin. Slots keep their attachment names and
// pick up the new skin's attachment for each, falling back to the default skin.
func (s *Skeleton) SetSkin(name string) error {
	skin := s.Data.FindSkin(name)
	if skin == nil {
		return fmt.Errorf("skeleton %s: skin %q not found", s.Data.Name, name)
	}
	s.Skin = skin
	for i, sl := range s.Slots {
		sl.setAttachment(sl.attachmentName, s.attachmentFor(i, sl.attachmentName))
	}
	return nil
}

// SetAttachment shows the named attachment in the named slot. An empty
// attachment name hides the slot.
func (s *Skeleton) SetAttachment(slotName, attachmentName string) error {
	sl := s.FindSlot(slotName)
	if sl == nil {
		return fmt.Errorf("skeleton %s: slot %q not found", s.Data.Name, slotName)
	}
	a := s.attachmentFor(sl.Data.Index, attachmentName)
	if attachmentName != "" && a == nil {
		return fmt.Errorf("skeleton %s: attachment %q not found for slot %q", s.Data.Name, attachmentName, slotName)
	}
	sl.setAttachment(attachmentName, a)
	return nil
}

// SlotBounds returns the world bounds of the named slot's attachment. A
// missing slot or an empty slot yields an empty rectangle.
func (s *Skeleton) SlotBounds(name string) common.Rect {
	return common.RectFromPoints(s.FindSlot(name).WorldVertices())
}

// Bounds returns the union of every visible slot's bounds.
func (s *Skeleton) Bounds() common.Rect {
	var r common.Rect
	for _, sl := range s.Slots {
		r = r.Union(common.RectFromPoints(sl.WorldVertices()))
	}
	return r
}
