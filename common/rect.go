package common

// Rect is an axis-aligned rectangle with its origin at the minimum corner.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the point lies inside r. Edges count as inside.
func (r Rect) Contains(x, y float32) bool {
	if r.Empty() {
		return false
	}
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX, maxY := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// RectFromPoints returns the bounds of the flat x,y pairs in pts.
func RectFromPoints(pts []float32) Rect {
	if len(pts) < 2 {
		return Rect{}
	}
	minX, minY := pts[0], pts[1]
	maxX, maxY := minX, minY
	for i := 2; i+1 < len(pts); i += 2 {
		minX = min(minX, pts[i])
		maxX = max(maxX, pts[i])
		minY = min(minY, pts[i+1])
		maxY = max(maxY, pts[i+1])
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
