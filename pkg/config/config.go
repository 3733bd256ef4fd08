// Package config loads the optional YAML application config. The file is
// checked against an embedded JSON schema before it is decoded, and every
// field it omits keeps its default.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the desktop app looks for its config.
const DefaultPath = "config.yaml"

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Export  ExportConfig  `yaml:"export"`
	Preview PreviewConfig `yaml:"preview"`
	Script  ScriptConfig  `yaml:"script"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type ExportConfig struct {
	// Filename is suggested to the save dialog.
	Filename string `yaml:"filename"`
}

type PreviewConfig struct {
	// MeshCells is the marching cubes resolution for viewport meshes.
	MeshCells int `yaml:"mesh_cells"`
}

type ScriptConfig struct {
	// Startup is a scene script evaluated at launch in place of the
	// default scene. Empty means none.
	Startup string        `yaml:"startup"`
	Timeout time.Duration `yaml:"timeout"`
}

// Defaults returns the config used when no file is present.
func Defaults() Config {
	return Config{
		Window:  WindowConfig{Title: "3dvisual", Width: 1280, Height: 800},
		Export:  ExportConfig{Filename: "geo.dat"},
		Preview: PreviewConfig{MeshCells: 64},
		Script:  ScriptConfig{Timeout: 5 * time.Second},
	}
}

// Load reads path. An empty path or a missing file yields Defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Defaults(), nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Defaults(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates and decodes YAML bytes over Defaults.
func Parse(b []byte) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(string(b)) == "" {
		return cfg, nil
	}

	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := validate(doc); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

//go:embed config.schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("config.schema.json", schemaSource)
	})
	return schema, schemaErr
}

// validate checks a decoded YAML document against the schema. The document
// goes through JSON first so numbers and maps have the shapes the
// validator expects.
func validate(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("config: schema: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
