package sdfx

import (
	"math"
	"testing"
)

// testCells keeps marching cubes cheap in tests.
const testCells = 24

func checkBounds(t *testing.T, gotMin, gotMax, wantMin, wantMax [3]float64, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(gotMin[i]-wantMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, gotMin[i], wantMin[i])
		}
		if math.Abs(gotMax[i]-wantMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, gotMax[i], wantMax[i])
		}
	}
}

func TestNewDefaultsCells(t *testing.T) {
	if got := New(0).Cells(); got != DefaultMeshCells {
		t.Errorf("New(0).Cells() = %d, want %d", got, DefaultMeshCells)
	}
	if got := New(10).Cells(); got != 10 {
		t.Errorf("New(10).Cells() = %d, want 10", got)
	}
}

func TestCylinderRunsAlongY(t *testing.T) {
	k := New(testCells)
	cyl, err := k.Cylinder(10, 1)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	min, max := cyl.BoundingBox()
	checkBounds(t, min, max, [3]float64{-1, -5, -1}, [3]float64{1, 5, 1}, 1e-9)
}

func TestCylinderMesh(t *testing.T) {
	k := New(testCells)
	cyl, err := k.Cylinder(2, 1)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 || mesh.VertexCount() != len(mesh.Indices) {
		t.Fatalf("inconsistent sizes: %d vertices, %d indices", mesh.VertexCount(), len(mesh.Indices))
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestSphereMesh(t *testing.T) {
	k := New(testCells)
	sp, err := k.Sphere(2)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	mesh, err := k.ToMesh(sp)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}

	// Every vertex lies near the surface.
	const tol = 0.2
	for i := 0; i < len(mesh.Vertices); i += 3 {
		x, y, z := float64(mesh.Vertices[i]), float64(mesh.Vertices[i+1]), float64(mesh.Vertices[i+2])
		if r := math.Sqrt(x*x + y*y + z*z); math.Abs(r-2) > tol {
			t.Fatalf("vertex %d at radius %f, expected ~2", i/3, r)
		}
	}
}

func TestInvalidDimensions(t *testing.T) {
	k := New(testCells)
	if _, err := k.Cylinder(2, 0); err == nil {
		t.Error("expected error for zero radius cylinder")
	}
	if _, err := k.Cylinder(-1, 1); err == nil {
		t.Error("expected error for negative height cylinder")
	}
	if _, err := k.Sphere(0); err == nil {
		t.Error("expected error for zero radius sphere")
	}
}

func TestTranslate(t *testing.T) {
	k := New(testCells)
	sp, _ := k.Sphere(5)
	moved := k.Translate(sp, 100, 200, 300)

	min, max := moved.BoundingBox()
	checkBounds(t, min, max, [3]float64{95, 195, 295}, [3]float64{105, 205, 305}, 0.5)
}

func TestRotate(t *testing.T) {
	k := New(testCells)
	cyl, _ := k.Cylinder(100, 5)

	// A cylinder along Y rotated a quarter turn about Z lies along X.
	rotated := k.Rotate(cyl, 0, 0, math.Pi/2)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-100) > tol {
		t.Errorf("rotated X extent = %f, expected ~100", xExtent)
	}
	if math.Abs(yExtent-10) > tol {
		t.Errorf("rotated Y extent = %f, expected ~10", yExtent)
	}
}
