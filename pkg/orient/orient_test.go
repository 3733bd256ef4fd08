package orient

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const tol = 1e-9

func vecNear(a, b v3.Vec, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestEulerToDirection(t *testing.T) {
	tests := []struct {
		name       string
		rx, ry, rz float64
		want       v3.Vec
	}{
		{"identity", 0, 0, 0, v3.Vec{X: 0, Y: 1, Z: 0}},
		{"x quarter turn", math.Pi / 2, 0, 0, v3.Vec{X: 0, Y: 0, Z: 1}},
		{"z quarter turn", 0, 0, math.Pi / 2, v3.Vec{X: -1, Y: 0, Z: 0}},
		{"y alone has no effect", 0, math.Pi / 3, 0, v3.Vec{X: 0, Y: 1, Z: 0}},
		{"x then y", math.Pi / 2, math.Pi / 2, 0, v3.Vec{X: 1, Y: 0, Z: 0}},
		{"half turn", math.Pi, 0, 0, v3.Vec{X: 0, Y: -1, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EulerToDirection(tt.rx, tt.ry, tt.rz)
			if !vecNear(got, tt.want, tol) {
				t.Errorf("EulerToDirection(%v, %v, %v) = %v, want %v", tt.rx, tt.ry, tt.rz, got, tt.want)
			}
		})
	}
}

func TestDirectionIsUnit(t *testing.T) {
	for _, o := range []v3.Vec{{X: 0.1, Y: 0.7, Z: -0.3}, {X: -1, Y: 1, Z: 1}, {X: 0.25, Y: -0.5, Z: 0.9}} {
		d := Direction(o)
		if math.Abs(d.Length()-1) > tol {
			t.Errorf("Direction(%v) length = %f, want 1", o, d.Length())
		}
	}
}

func TestDirectionToEulerReproducesDirection(t *testing.T) {
	orientations := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 0.5, Y: 0, Z: 0},
		{X: 0.25, Y: 0.5, Z: 0},
		{X: 0.3, Y: -0.2, Z: 0.4},
		{X: -0.7, Y: 0.1, Z: 0.9},
		{X: 1, Y: 1, Z: 1},
	}
	for _, o := range orientations {
		d := Direction(o)
		back := DirectionToEuler(d)
		if back.Z != 0 {
			t.Errorf("DirectionToEuler(%v).Z = %f, want 0", d, back.Z)
		}
		if got := Direction(back); !vecNear(got, d, 1e-9) {
			t.Errorf("orientation %v: direction %v re-derived as %v", o, d, got)
		}
	}
}

func TestDirectionToEulerIsLossyForZ(t *testing.T) {
	o := v3.Vec{X: 0.25, Y: 0, Z: 0.5}
	back := DirectionToEuler(Direction(o))
	if vecNear(back, o, 1e-6) {
		t.Errorf("expected reconstructed angles to differ from %v, got %v", o, back)
	}
}
