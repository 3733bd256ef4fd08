package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.yaml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", path, err)
		}
		if cfg != Defaults() {
			t.Errorf("Load(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	src := `
window:
  title: Tank farm
export:
  filename: tanks.dat
script:
  startup: scenes/tanks.zy
  timeout: 2s
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Defaults()
	if cfg.Window.Title != "Tank farm" || cfg.Window.Width != def.Window.Width {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Export.Filename != "tanks.dat" {
		t.Errorf("filename = %q", cfg.Export.Filename)
	}
	if cfg.Preview.MeshCells != def.Preview.MeshCells {
		t.Errorf("mesh cells = %d, want default", cfg.Preview.MeshCells)
	}
	if cfg.Script.Startup != "scenes/tanks.zy" || cfg.Script.Timeout != 2*time.Second {
		t.Errorf("script = %+v", cfg.Script)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown section", "render:\n  fps: 60\n", "render"},
		{"width too small", "window:\n  width: 10\n", "width"},
		{"width not integer", "window:\n  width: wide\n", "width"},
		{"filename with path", "export:\n  filename: out/geo.dat\n", "filename"},
		{"mesh cells too large", "preview:\n  mesh_cells: 4096\n", "mesh_cells"},
		{"bad timeout", "script:\n  timeout: soon\n", "timeout"},
		{"broken yaml", "window: [", "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse([]byte("  \n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Defaults() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("preview:\n  mesh_cells: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("err = %v, want it to name the file", err)
	}
}
