// Package kernel defines the abstract geometry kernel used to build preview
// meshes for the viewport. Implementations wrap a solid modeling library
// behind this interface so the backend can be swapped.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds and meshes solids. Primitives are centered on the origin;
// cylinders run along +Y so that an unrotated cylinder matches the
// reference direction of the orientation math.
type Kernel interface {
	// Primitives
	Cylinder(height, radius float64) (Solid, error)
	Sphere(radius float64) (Solid, error)

	// Transforms
	Rotate(s Solid, x, y, z float64) Solid // radians, about X, then Y, then Z
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
