package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pohani/3dvisual/pkg/workbench"
)

// ---------------------------------------------------------------------------
// Evaluate edge cases
// ---------------------------------------------------------------------------

func TestEvaluateEmptySource(t *testing.T) {
	app := newTestApp(t, &fakeDialogs{})
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Meshes == nil || result.Errors == nil || result.Warnings == nil {
		t.Error("result slices should be non-nil")
	}
	if n := len(app.Scene().Primitives); n != 0 {
		t.Errorf("empty script should leave an empty scene, got %d", n)
	}
}

func TestEvaluateErrorKeepsScene(t *testing.T) {
	app := newTestApp(t, &fakeDialogs{})

	result := app.Evaluate("(+ 1 2)\n(sphere :radius")
	if len(result.Errors) == 0 {
		t.Fatal("expected an eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
	if result.Errors[0].Message == "" {
		t.Error("eval error should have a message")
	}
	s := app.Scene()
	if len(s.Primitives) != 1 || s.Primitives[0].ID != "cylinder1" {
		t.Errorf("scene changed after failed script: %+v", s)
	}
}

func TestEvaluateReportsInvalidPrimitives(t *testing.T) {
	app := newTestApp(t, &fakeDialogs{})

	result := app.Evaluate(`(sphere :radius 0) (sphere :radius 1 :at (vec3 5 0 0))`)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 1 || result.Meshes[0].PartName != "sphere2" {
		t.Fatalf("expected only sphere2 to be meshed, got %d meshes", len(result.Meshes))
	}
	if len(result.Warnings) == 0 {
		t.Error("expected warnings for the zero-radius sphere")
	}
}

// ---------------------------------------------------------------------------
// Import and export edge cases
// ---------------------------------------------------------------------------

func TestImportEmptyFileKeepsScene(t *testing.T) {
	app := newTestApp(t, &fakeDialogs{openText: "hello\nend body\n"})

	res := app.Import()
	if res.OK {
		t.Fatal("import of a file without bodies should fail")
	}
	if res.Message == "" {
		t.Error("expected a message for the user")
	}
	if s := app.Scene(); len(s.Primitives) != 1 || s.Primitives[0].ID != "cylinder1" {
		t.Errorf("scene changed: %+v", s)
	}
}

func TestImportCanceled(t *testing.T) {
	app := newTestApp(t, &fakeDialogs{openErr: workbench.ErrCanceled})
	res := app.Import()
	if res.OK || !res.Canceled {
		t.Errorf("import = %+v, want canceled", res)
	}
}

func TestImportReportsWarnings(t *testing.T) {
	app := newTestApp(t, &fakeDialogs{openText: "sph 1 0 0 0 1\nmystery line\n"})
	res := app.Import()
	if !res.OK {
		t.Fatalf("import failed: %+v", res)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", res.Warnings)
	}
	if app.Scene().Selected != "sphere1" {
		t.Errorf("selected = %q, want sphere1", app.Scene().Selected)
	}
}

func TestExportCanceledOnCollision(t *testing.T) {
	d := &fakeDialogs{answer: false}
	app := newTestApp(t, d)
	app.AddCylinder() // same place as cylinder1

	res := app.Export()
	if res.OK || !res.Canceled {
		t.Fatalf("export = %+v, want canceled", res)
	}
	if len(res.Collisions) != 1 || res.Collisions[0] != (PairData{A: "cylinder1", B: "cylinder2"}) {
		t.Errorf("collisions = %v", res.Collisions)
	}
	if d.saved != nil {
		t.Error("nothing should be saved after cancel")
	}
}

func TestExportWithoutCollisionSkipsPrompt(t *testing.T) {
	d := &fakeDialogs{}
	app := newTestApp(t, d)

	res := app.Export()
	if !res.OK {
		t.Fatalf("export = %+v", res)
	}
	if d.asked != 0 {
		t.Error("prompt shown without collisions")
	}
}

// ---------------------------------------------------------------------------
// Property edits
// ---------------------------------------------------------------------------

func TestPropertyEdits(t *testing.T) {
	app := newTestApp(t, &fakeDialogs{})

	id := app.AddSphere()
	if id != "sphere1" || app.Scene().Selected != id {
		t.Fatalf("AddSphere = %q, selected %q", id, app.Scene().Selected)
	}
	if err := app.SetRadius("cylinder1", 2.5); err != nil {
		t.Fatal(err)
	}
	if err := app.SetMaterial("sphere1", "Wood"); err != nil {
		t.Fatal(err)
	}
	if err := app.Select("cylinder1"); err != nil {
		t.Fatal(err)
	}

	s := app.Scene()
	if s.Primitives[0].Radius != 2.5 || s.Primitives[1].Material != "wood" || s.Selected != "cylinder1" {
		t.Errorf("scene = %+v", s)
	}

	meshes := app.Meshes()
	if len(meshes) != 2 || !meshes[0].Selected || meshes[1].Selected {
		t.Errorf("selection flags wrong on %d meshes", len(meshes))
	}

	if err := app.SetMaterial("sphere1", "gold"); err == nil {
		t.Error("expected an error for an unknown material")
	}
	if err := app.Remove("sphere9"); !errors.Is(err, workbench.ErrUnknownPrimitive) {
		t.Errorf("Remove err = %v", err)
	}
	if err := app.Remove("sphere1"); err != nil {
		t.Fatal(err)
	}
	if n := len(app.Scene().Primitives); n != 1 {
		t.Errorf("got %d primitives after remove", n)
	}
}

// ---------------------------------------------------------------------------
// Startup script
// ---------------------------------------------------------------------------

func TestStartupScript(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.zy")
	bad := filepath.Join(dir, "bad.zy")
	if err := os.WriteFile(good, []byte(`(sphere) (sphere :at (vec3 3 0 0))`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`(sphere`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"script scene", good, 2},
		{"broken script falls back", bad, 1},
		{"missing script falls back", filepath.Join(dir, "none.zy"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Script.Startup = tt.path
			d := &fakeDialogs{}
			app := newApp(cfg, d, d, d)
			if n := len(app.Scene().Primitives); n != tt.want {
				t.Errorf("got %d primitives, want %d", n, tt.want)
			}
		})
	}
}
