// Package orient converts the three-angle orientation stored on a cylinder
// into the unit direction of its axis, and back again as far as that is
// possible.
//
// The forward mapping rotates the reference vector (0,1,0) about X, then Y,
// then Z. This order is part of the geometry file contract. The mapping is
// not invertible: the rotation about the resulting axis is lost, and a Z
// rotation cannot be separated from X once only a direction remains.
package orient

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Reference is the axis of an unrotated cylinder.
var Reference = v3.Vec{X: 0, Y: 1, Z: 0}

// Matrix returns the rotation applying X, then Y, then Z (radians).
func Matrix(rx, ry, rz float64) sdf.M44 {
	return sdf.RotateZ(rz).Mul(sdf.RotateY(ry)).Mul(sdf.RotateX(rx))
}

// EulerToDirection returns the unit axis direction for rotations given in
// radians. The result is re-normalized to absorb floating point drift.
func EulerToDirection(rx, ry, rz float64) v3.Vec {
	d := Matrix(rx, ry, rz).MulPosition(Reference)
	return d.Normalize()
}

// Direction returns the axis direction for an orientation expressed in
// multiples of pi, as stored on scene cylinders.
func Direction(o v3.Vec) v3.Vec {
	return EulerToDirection(o.X*math.Pi, o.Y*math.Pi, o.Z*math.Pi)
}

// DirectionToEuler reconstructs an orientation (in multiples of pi) whose
// Direction equals d. Z is always zero. Only the direction survives, so an
// orientation that had a Z component comes back with different angles.
func DirectionToEuler(d v3.Vec) v3.Vec {
	return v3.Vec{
		X: math.Atan2(math.Sqrt(d.X*d.X+d.Z*d.Z), d.Y) / math.Pi,
		Y: math.Atan2(d.X, d.Z) / math.Pi,
		Z: 0,
	}
}
