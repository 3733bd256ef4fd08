// Package collide decides whether pairs of scene primitives intersect.
//
// A cylinder is reduced to its axis segment plus one radius. The tests are
// approximations, so the result is only used to warn before an export and
// never blocks it. All comparisons are strict: touching is not colliding.
package collide

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pohani/3dvisual/pkg/orient"
	"github.com/pohani/3dvisual/pkg/scene"
)

const (
	// SphereEpsilon is subtracted from the radius sum of two spheres so
	// that float jitter at tangency does not report a collision.
	SphereEpsilon = 0.01

	// ParallelTolerance is the cross product magnitude below which two
	// cylinder axes are treated as parallel.
	ParallelTolerance = 1e-3
)

// Segment is a cylinder axis from cap center A to cap center B.
type Segment struct {
	A, B v3.Vec
}

// AxisOf returns the axis segment and unit direction of c.
func AxisOf(c scene.Cylinder) (Segment, v3.Vec) {
	dir := orient.Direction(c.Orientation)
	half := dir.MulScalar(0.5 * c.Height)
	return Segment{A: c.Position.Sub(half), B: c.Position.Add(half)}, dir
}

// Spheres reports whether two spheres overlap by more than SphereEpsilon.
func Spheres(a, b scene.Sphere) bool {
	d := a.Position.Sub(b.Position).Length()
	return d < a.Radius+b.Radius-SphereEpsilon
}

// Cylinders reports whether two cylinders collide.
//
// Both cases compare infinite lines rather than segments. Parallel axes
// fall back to the center offset with its component along the axis
// dropped, so two parallel cylinders far apart along their shared
// direction still collide when they are close sideways. Skew axes use the
// closest distance between the two lines. Finite caps are ignored.
func Cylinders(a, b scene.Cylinder) bool {
	_, d1 := AxisOf(a)
	_, d2 := AxisOf(b)
	reach := a.Radius() + b.Radius()

	n := d1.Cross(d2)
	if n.Length() < ParallelTolerance {
		return centerOffset(a.Position, b.Position, d1) < reach
	}
	return lineDistance(a.Position, b.Position, n) < reach
}

// centerOffset is the distance from p2 to the line through p1 with unit
// direction d.
func centerOffset(p1, p2, d v3.Vec) float64 {
	rel := p2.Sub(p1)
	return rel.Sub(d.MulScalar(rel.Dot(d))).Length()
}

// lineDistance is the distance between two lines through p1 and p2 whose
// directions have cross product n.
func lineDistance(p1, p2, n v3.Vec) float64 {
	return math.Abs(p2.Sub(p1).Dot(n.Normalize()))
}

// CylinderSphere reports whether a cylinder and a sphere collide.
func CylinderSphere(c scene.Cylinder, s scene.Sphere) bool {
	seg, dir := AxisOf(c)
	ab := seg.B.Sub(seg.A)

	t := s.Position.Sub(seg.A).Dot(ab) / ab.Dot(ab)
	switch {
	case t <= 0:
		return capHit(seg.A, dir, c.RadiusTop, s)
	case t >= 1:
		return capHit(seg.B, dir, c.RadiusTop, s)
	}

	onAxis := seg.A.Add(ab.MulScalar(t))
	return s.Position.Sub(onAxis).Length() < c.Radius()+s.Radius
}

// capHit tests a sphere against the disk of radius r centered on center
// with normal n.
func capHit(center, n v3.Vec, r float64, s scene.Sphere) bool {
	rel := s.Position.Sub(center)
	axial := rel.Dot(n)
	inPlane := rel.Sub(n.MulScalar(axial)).Length()

	if inPlane <= r {
		return math.Abs(axial) < s.Radius
	}
	excess := inPlane - r
	return math.Sqrt(excess*excess+axial*axial) < s.Radius
}

// Collides dispatches to the test matching the kinds of a and b. The
// result does not depend on argument order.
func Collides(a, b scene.Primitive) bool {
	switch pa := a.(type) {
	case scene.Cylinder:
		switch pb := b.(type) {
		case scene.Cylinder:
			return Cylinders(pa, pb)
		case scene.Sphere:
			return CylinderSphere(pa, pb)
		}
	case scene.Sphere:
		switch pb := b.(type) {
		case scene.Cylinder:
			return CylinderSphere(pb, pa)
		case scene.Sphere:
			return Spheres(pa, pb)
		}
	}
	panic("collide: unknown primitive type")
}

// Pair names two colliding primitives, in scene insertion order.
type Pair struct {
	A, B scene.ID
}

// Detect tests every unordered pair of primitives in s and returns the
// colliding ones. Pairs are ordered by the insertion order of their first
// and then second member. The scene is only read.
func Detect(s scene.Scene) []Pair {
	entries := s.Entries()
	var pairs []Pair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if Collides(entries[i].Primitive, entries[j].Primitive) {
				pairs = append(pairs, Pair{A: entries[i].ID, B: entries[j].ID})
			}
		}
	}
	return pairs
}
