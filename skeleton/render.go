package skeleton

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
)

var blendModes = map[BlendMode]ebiten.Blend{
	BlendNormal:   ebiten.BlendSourceOver,
	BlendAdditive: ebiten.BlendLighter,
	BlendMultiply: {
		BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
		BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
	BlendScreen: {
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
}

var quadIndices = []uint16{0, 1, 2, 2, 3, 0}

// Renderer draws skeletons slot by slot. It reuses its vertex buffers, so
// one Renderer should not be shared across goroutines.
type Renderer struct {
	world    []float32
	vertices []ebiten.Vertex
	opts     colorm.DrawTrianglesOptions
	cm       colorm.ColorM
}

func NewRenderer() *Renderer {
	return &Renderer{
		world:    make([]float32, 0, 8),
		vertices: make([]ebiten.Vertex, 4),
		opts:     colorm.DrawTrianglesOptions{Filter: ebiten.FilterLinear},
	}
}

// Draw renders s onto dst, mapping world coordinates through geo.
func (r *Renderer) Draw(dst *ebiten.Image, s *Skeleton, geo ebiten.GeoM) {
	if dst == nil || s == nil {
		return
	}
	for _, slot := range s.Slots {
		a := slot.attachment
		if a == nil || a.Region == nil || a.Region.Page == nil || a.Region.Page.Image == nil {
			continue
		}
		col := s.Color
		for i := range col {
			col[i] *= slot.Color[i] * a.Color[i]
		}
		if col[3] <= 0 {
			continue
		}

		r.world = a.ComputeWorldVertices(slot.Bone, r.world)
		uvs := a.Region.UVs()
		for i := range r.vertices {
			x, y := geo.Apply(float64(r.world[i*2]), float64(r.world[i*2+1]))
			r.vertices[i] = ebiten.Vertex{
				DstX:   float32(x),
				DstY:   float32(y),
				SrcX:   uvs[i*2],
				SrcY:   uvs[i*2+1],
				ColorR: 1,
				ColorG: 1,
				ColorB: 1,
				ColorA: 1,
			}
		}

		r.cm.Reset()
		if a.Region.Page.PMA {
			// Texels were exported premultiplied; scale colour by alpha to match.
			r.cm.Scale(float64(col[0]*col[3]), float64(col[1]*col[3]), float64(col[2]*col[3]), float64(col[3]))
		} else {
			r.cm.Scale(float64(col[0]), float64(col[1]), float64(col[2]), float64(col[3]))
		}
		r.opts.Blend = blendModes[slot.Data.Blend]
		colorm.DrawTriangles(dst, r.vertices, quadIndices, a.Region.Page.Image, r.cm, &r.opts)
	}
}
