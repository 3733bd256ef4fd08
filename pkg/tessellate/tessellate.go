// Package tessellate turns a scene into triangle meshes using a geometry
// kernel. One mesh is produced per primitive.
package tessellate

import (
	"errors"
	"fmt"
	"math"

	"github.com/pohani/3dvisual/pkg/kernel"
	"github.com/pohani/3dvisual/pkg/scene"
)

// Tessellate produces one mesh per primitive in scene order, named by
// primitive id. A primitive the kernel cannot build (zero radius, NaN
// fields) is skipped and its error joined into the returned error; the
// meshes for the rest are still returned. The scene is never mutated.
func Tessellate(s scene.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	var (
		meshes []*kernel.Mesh
		errs   []error
	)
	for _, e := range s.Entries() {
		mesh, err := Primitive(k, e.Primitive)
		if err != nil {
			errs = append(errs, fmt.Errorf("tessellate: %s: %w", e.ID, err))
			continue
		}
		mesh.PartName = string(e.ID)
		meshes = append(meshes, mesh)
	}
	return meshes, errors.Join(errs...)
}

// Primitive builds and meshes a single primitive in world coordinates.
// Rotation is applied before translation.
func Primitive(k kernel.Kernel, p scene.Primitive) (*kernel.Mesh, error) {
	var (
		solid kernel.Solid
		err   error
	)

	switch v := p.(type) {
	case scene.Cylinder:
		solid, err = k.Cylinder(v.Height, v.Radius())
		if err != nil {
			return nil, err
		}
		// Orientation is stored in units of pi.
		o := v.Orientation.MulScalar(math.Pi)
		if o.X != 0 || o.Y != 0 || o.Z != 0 {
			solid = k.Rotate(solid, o.X, o.Y, o.Z)
		}
	case scene.Sphere:
		solid, err = k.Sphere(v.Radius)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported primitive type %T", p)
	}

	c := p.Center()
	if c.X != 0 || c.Y != 0 || c.Z != 0 {
		solid = k.Translate(solid, c.X, c.Y, c.Z)
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, err
	}
	mesh.Material = p.MaterialOf().String()
	return mesh, nil
}
