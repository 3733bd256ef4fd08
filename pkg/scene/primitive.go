package scene

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec3 is a point or vector in world space.
type Vec3 = v3.Vec

// Kind distinguishes the primitive shapes.
type Kind int

const (
	KindCylinder Kind = iota
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindCylinder:
		return "cylinder"
	case KindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Primitive is a solid in the scene. Only Cylinder and Sphere implement it.
type Primitive interface {
	Kind() Kind
	Center() Vec3
	MaterialOf() Material
	primitive() // marker method restricting implementations to this package
}

// Cylinder is a right circular cylinder centered on Position. Its axis is
// the direction derived from Orientation, given in multiples of pi per
// axis. RadiusTop and RadiusBottom are always equal.
type Cylinder struct {
	RadiusTop    float64  `json:"radiusTop"`
	RadiusBottom float64  `json:"radiusBottom"`
	Height       float64  `json:"height"`
	Position     Vec3     `json:"position"`
	Orientation  Vec3     `json:"orientation"`
	Material     Material `json:"material"`
}

// NewCylinder returns a cylinder with equal top and bottom radii.
func NewCylinder(radius, height float64, position, orientation Vec3, m Material) Cylinder {
	return Cylinder{
		RadiusTop:    radius,
		RadiusBottom: radius,
		Height:       height,
		Position:     position,
		Orientation:  orientation,
		Material:     m,
	}
}

func (Cylinder) Kind() Kind             { return KindCylinder }
func (c Cylinder) Center() Vec3         { return c.Position }
func (c Cylinder) MaterialOf() Material { return c.Material }
func (Cylinder) primitive()             {}

// Radius returns the cylinder radius.
func (c Cylinder) Radius() float64 {
	return c.RadiusTop
}

// WithRadius returns a copy with both radii set to r.
func (c Cylinder) WithRadius(r float64) Cylinder {
	c.RadiusTop = r
	c.RadiusBottom = r
	return c
}

// Sphere is a ball centered on Position.
type Sphere struct {
	Radius   float64  `json:"radius"`
	Position Vec3     `json:"position"`
	Material Material `json:"material"`
}

func (Sphere) Kind() Kind             { return KindSphere }
func (s Sphere) Center() Vec3         { return s.Position }
func (s Sphere) MaterialOf() Material { return s.Material }
func (Sphere) primitive()             {}

// WithMaterial returns a copy of p carrying material m.
func WithMaterial(p Primitive, m Material) Primitive {
	switch v := p.(type) {
	case Cylinder:
		v.Material = m
		return v
	case Sphere:
		v.Material = m
		return v
	default:
		panic("scene: unknown primitive type")
	}
}
