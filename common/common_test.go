package common

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestHSVToRGB(t *testing.T) {
	cases := []struct {
		name    string
		h, s, v float32
		r, g, b float32
	}{
		{"red", 0, 1, 1, 1, 0, 0},
		{"green", 120, 1, 1, 0, 1, 0},
		{"blue", 240, 1, 1, 0, 0, 1},
		{"wraps", 360, 1, 1, 1, 0, 0},
		{"negative_hue", -120, 1, 1, 0, 0, 1},
		{"grey", 42, 0, 0.5, 0.5, 0.5, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, g, b := HSVToRGB(c.h, c.s, c.v)
			if !near(r, c.r) || !near(g, c.g) || !near(b, c.b) {
				t.Fatalf("HSVToRGB(%v,%v,%v) = %v,%v,%v want %v,%v,%v", c.h, c.s, c.v, r, g, b, c.r, c.g, c.b)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		a       float32
		wantErr bool
	}{
		{"rgb", "ff0000", 1, false},
		{"rgba", "ff000080", 128.0 / 255, false},
		{"short", "fff", 0, true},
		{"bad_digits", "zzzzzz", 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			col, err := ParseHexColor(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if !c.wantErr && (!near(col[0], 1) || !near(col[3], c.a)) {
				t.Fatalf("got %v", col)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}
	cases := []struct {
		name string
		x, y float32
		want bool
	}{
		{"inside", 15, 15, true},
		{"edge", 30, 20, true},
		{"left", 9, 15, false},
		{"above", 15, 21, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := r.Contains(c.x, c.y); got != c.want {
				t.Fatalf("Contains(%v,%v) = %v", c.x, c.y, got)
			}
		})
	}

	if (Rect{}).Contains(0, 0) {
		t.Fatalf("empty rect must not contain points")
	}
	u := r.Union(Rect{X: 0, Y: 0, W: 5, H: 5})
	if u != (Rect{X: 0, Y: 0, W: 30, H: 20}) {
		t.Fatalf("union = %+v", u)
	}
	if got := RectFromPoints([]float32{1, 2, -3, 4, 5, -6}); got != (Rect{X: -3, Y: -6, W: 8, H: 10}) {
		t.Fatalf("RectFromPoints = %+v", got)
	}
}

func TestWrapClamp(t *testing.T) {
	if got := Wrap(-30, 360); got != 330 {
		t.Fatalf("Wrap = %v", got)
	}
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Fatalf("Clamp = %v", got)
	}
	if got := Clamp(-2, 0, 10); got != 0 {
		t.Fatalf("Clamp int = %v", got)
	}
}
