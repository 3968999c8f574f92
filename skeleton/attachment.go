package skeleton

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Quad corner order used by offsets, world vertices and UVs.
const (
	cornerBL = iota
	cornerUL
	cornerUR
	cornerBR
)

// RegionAttachment is a textured quad attached to a bone.
type RegionAttachment struct {
	Name string
	Path string

	X, Y           float32
	Rotation       float32
	ScaleX, ScaleY float32
	Width, Height  float32
	Color          mgl32.Vec4

	Region *AtlasRegion

	offset [8]float32
}

// UpdateOffset recomputes the quad corners in bone space. Call it after
// changing the geometry fields or the region.
func (a *RegionAttachment) UpdateOffset() {
	localX := -a.Width / 2 * a.ScaleX
	localY := -a.Height / 2 * a.ScaleY
	localX2 := -localX
	localY2 := -localY

	if r := a.Region; r != nil && r.OrigW > 0 && r.OrigH > 0 {
		regionScaleX := a.Width / float32(r.OrigW) * a.ScaleX
		regionScaleY := a.Height / float32(r.OrigH) * a.ScaleY
		localX += float32(r.OffsetX) * regionScaleX
		localY += float32(r.OffsetY) * regionScaleY
		localX2 = localX + float32(r.W)*regionScaleX
		localY2 = localY + float32(r.H)*regionScaleY
	}

	rad := float64(a.Rotation) * math.Pi / 180
	cos, sin := float32(math.Cos(rad)), float32(math.Sin(rad))
	localXCos, localXSin := localX*cos+a.X, localX*sin
	localYCos, localYSin := localY*cos+a.Y, localY*sin
	localX2Cos, localX2Sin := localX2*cos+a.X, localX2*sin
	localY2Cos, localY2Sin := localY2*cos+a.Y, localY2*sin

	a.offset[cornerBL*2], a.offset[cornerBL*2+1] = localXCos-localYSin, localYCos+localXSin
	a.offset[cornerUL*2], a.offset[cornerUL*2+1] = localXCos-localY2Sin, localY2Cos+localXSin
	a.offset[cornerUR*2], a.offset[cornerUR*2+1] = localX2Cos-localY2Sin, localY2Cos+localX2Sin
	a.offset[cornerBR*2], a.offset[cornerBR*2+1] = localX2Cos-localYSin, localYCos+localX2Sin
}

// ComputeWorldVertices writes the four transformed corners into out.
func (a *RegionAttachment) ComputeWorldVertices(b *Bone, out []float32) []float32 {
	out = out[:0]
	for i := 0; i < 4; i++ {
		v := b.Mat.Mul2x1(mgl32.Vec2{a.offset[i*2], a.offset[i*2+1]}).Add(b.World)
		out = append(out, v.X(), v.Y())
	}
	return out
}

// UVs returns the page pixel coordinates for each corner, in corner order.
func (a *AtlasRegion) UVs() [8]float32 {
	var uv [8]float32
	pw, ph := a.W, a.H
	if a.Rotate {
		pw, ph = ph, pw
	}
	left, top := float32(a.X), float32(a.Y)
	right, bottom := float32(a.X+pw), float32(a.Y+ph)

	if a.Rotate {
		// Stored 90 degrees clockwise: the region's top edge runs down the right side.
		uv[cornerBL*2], uv[cornerBL*2+1] = left, top
		uv[cornerUL*2], uv[cornerUL*2+1] = right, top
		uv[cornerUR*2], uv[cornerUR*2+1] = right, bottom
		uv[cornerBR*2], uv[cornerBR*2+1] = left, bottom
		return uv
	}
	uv[cornerBL*2], uv[cornerBL*2+1] = left, bottom
	uv[cornerUL*2], uv[cornerUL*2+1] = left, top
	uv[cornerUR*2], uv[cornerUR*2+1] = right, top
	uv[cornerBR*2], uv[cornerBR*2+1] = right, bottom
	return uv
}
