package skeleton

import (
	"sort"

	"github.com/pkg/errors"
)

type CurveKind uint8

const (
	CurveLinear CurveKind = iota
	CurveStepped
	CurveBezier
)

// Curve shapes the interpolation from one key to the next. Bezier curves
// use control points (CX1, CY1) and (CX2, CY2) in the unit square.
type Curve struct {
	Kind               CurveKind
	CX1, CY1, CX2, CY2 float32
}

const bezierIterations = 20

// Percent maps linear progress p in [0,1] to curved progress.
func (c Curve) Percent(p float32) float32 {
	switch c.Kind {
	case CurveStepped:
		return 0
	case CurveBezier:
		lo, hi := float32(0), float32(1)
		t := p
		for i := 0; i < bezierIterations; i++ {
			x := bezier(t, c.CX1, c.CX2)
			if x < p {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return bezier(t, c.CY1, c.CY2)
	default:
		return p
	}
}

// bezier evaluates one axis of a cubic from 0 to 1 with inner controls c1, c2.
func bezier(t, c1, c2 float32) float32 {
	u := 1 - t
	return 3*u*u*t*c1 + 3*u*t*t*c2 + t*t*t
}

// keyframes holds the times and curves shared by every timeline kind. A key
// carries one curve per channel, or a single curve shared by all channels.
type keyframes struct {
	times  []float32
	curves [][]Curve
}

// locate returns the key at or before t and the linear progress toward the
// next key. Before the first key and from the last key on, progress is 0.
func (k *keyframes) locate(t float32) (int, float32) {
	n := len(k.times)
	if n == 0 {
		return -1, 0
	}
	if t <= k.times[0] {
		return 0, 0
	}
	i := sort.Search(n, func(i int) bool { return k.times[i] > t }) - 1
	if i >= n-1 {
		return n - 1, 0
	}
	span := k.times[i+1] - k.times[i]
	if span <= 0 {
		return i + 1, 0
	}
	return i, (t - k.times[i]) / span
}

// percent shapes progress p from key i for one channel.
func (k *keyframes) percent(i, channel int, p float32) float32 {
	if p <= 0 {
		return 0
	}
	cs := k.curves[i]
	if len(cs) == 0 {
		return p
	}
	if channel >= len(cs) {
		channel = len(cs) - 1
	}
	return cs[channel].Percent(p)
}

func (k *keyframes) add(time float32, c ...Curve) {
	k.times = append(k.times, time)
	k.curves = append(k.curves, c)
}

func (k *keyframes) last() float32 {
	if len(k.times) == 0 {
		return 0
	}
	return k.times[len(k.times)-1]
}

// curveSource is a key's curve as exported, before it can be resolved
// against the following key.
type curveSource struct {
	shared Curve
	// valueSpace holds four controls per channel as (time, value) pairs,
	// the way Spine 4 exports bezier curves.
	valueSpace []float32
}

// resolve converts the key's curve into unit-square curves, one per channel.
// values are the channel values of this key and the next one.
func (c curveSource) resolve(t0, t1 float32, v0, v1 []float32) ([]Curve, error) {
	if c.valueSpace == nil {
		return []Curve{c.shared}, nil
	}
	if len(c.valueSpace) != 4*len(v0) {
		return nil, errors.Errorf("curve has %d values, want %d", len(c.valueSpace), 4*len(v0))
	}
	dt := t1 - t0
	out := make([]Curve, len(v0))
	for ch := range v0 {
		b := c.valueSpace[4*ch : 4*ch+4]
		dv := v1[ch] - v0[ch]
		if dt <= 0 || dv == 0 {
			out[ch] = Curve{Kind: CurveLinear}
			continue
		}
		out[ch] = Curve{
			Kind: CurveBezier,
			CX1:  (b[0] - t0) / dt,
			CY1:  (b[1] - v0[ch]) / dv,
			CX2:  (b[2] - t0) / dt,
			CY2:  (b[3] - v0[ch]) / dv,
		}
	}
	return out, nil
}
