package common

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

var White = mgl32.Vec4{1, 1, 1, 1}

// HSVToRGB converts a hue in degrees plus saturation and value in [0,1] to RGB.
func HSVToRGB(h, s, v float32) (r, g, b float32) {
	h = Wrap(h, 360) / 60
	s = Clamp(s, 0, 1)
	v = Clamp(v, 0, 1)
	i := int(math.Floor(float64(h)))
	f := h - float32(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// ParseHexColor reads "rrggbb" or "rrggbbaa" into a normalized RGBA vector.
func ParseHexColor(s string) (mgl32.Vec4, error) {
	if len(s) != 6 && len(s) != 8 {
		return White, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return White, fmt.Errorf("color %q: %w", s, err)
	}
	return mgl32.Vec4{
		float32(n>>24&0xff) / 255,
		float32(n>>16&0xff) / 255,
		float32(n>>8&0xff) / 255,
		float32(n&0xff) / 255,
	}, nil
}
