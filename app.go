package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/pohani/3dvisual/pkg/codec"
	"github.com/pohani/3dvisual/pkg/collide"
	"github.com/pohani/3dvisual/pkg/config"
	"github.com/pohani/3dvisual/pkg/engine"
	"github.com/pohani/3dvisual/pkg/kernel"
	"github.com/pohani/3dvisual/pkg/kernel/sdfx"
	"github.com/pohani/3dvisual/pkg/scene"
	"github.com/pohani/3dvisual/pkg/tessellate"
	"github.com/pohani/3dvisual/pkg/workbench"
)

// materialColors maps material names to viewport colors.
var materialColors = map[string]string{
	"concrete": "#9E9E9E",
	"steel":    "#4A90D9",
	"wood":     "#A0522D",
	"standard": "#2ECC71",
}

// fallbackColor is used for materials without an entry in materialColors.
const fallbackColor = "#E74C3C"

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	cfg    config.Config
	bench  *workbench.Workbench
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
	Selected bool      `json:"selected"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// PrimitiveData describes one primitive for the property panel.
type PrimitiveData struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Radius      float64    `json:"radius"`
	Height      float64    `json:"height,omitempty"`
	Position    [3]float64 `json:"position"`
	Orientation [3]float64 `json:"orientation,omitempty"`
	Material    string     `json:"material"`
}

// SceneData is the current scene in insertion order.
type SceneData struct {
	Primitives []PrimitiveData `json:"primitives"`
	Selected   string          `json:"selected"`
}

// PairData names two colliding primitives.
type PairData struct {
	A string `json:"a"`
	B string `json:"b"`
}

// ActionResult reports the outcome of an import or export.
type ActionResult struct {
	OK         bool       `json:"ok"`
	Canceled   bool       `json:"canceled"`
	Message    string     `json:"message"`
	Collisions []PairData `json:"collisions"`
	Warnings   []string   `json:"warnings"`
}

// NewApp creates an App that talks to the user through Wails dialogs.
func NewApp(cfg config.Config) *App {
	d := dialogs{}
	return newApp(cfg, d, d, d)
}

// newApp wires an App with explicit collaborators.
func newApp(cfg config.Config, opener workbench.Opener, saver workbench.Saver, confirmer workbench.Confirmer) *App {
	a := &App{
		cfg:    cfg,
		engine: engine.NewEngine(engine.WithTimeout(cfg.Script.Timeout)),
		kernel: sdfx.New(cfg.Preview.MeshCells),
	}
	a.bench = workbench.New(a.initialScene(), opener, saver, confirmer,
		workbench.WithFilename(cfg.Export.Filename))
	return a
}

// initialScene evaluates the configured startup script, falling back to
// the default scene when there is none or it fails.
func (a *App) initialScene() scene.Scene {
	path := a.cfg.Script.Startup
	if path == "" {
		return scene.Default()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		log.Printf("startup script: %v", err)
		return scene.Default()
	}
	s, evalErrs, err := a.engine.Evaluate(string(src))
	if err != nil {
		log.Printf("startup script %s: %v", path, err)
		return scene.Default()
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("startup script %s: %s", path, e)
		}
		return scene.Default()
	}
	if s.Len() == 0 {
		log.Printf("startup script %s: no primitives, using default scene", path)
		return scene.Default()
	}
	return s
}

// startup is called by Wails on app startup. The context is saved
// so dialogs can be opened later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// dialogCtx returns the Wails context, or a background context in tests.
func (a *App) dialogCtx() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// Evaluate runs a scene script. On success the script's scene replaces the
// current one and its meshes are returned; on failure the current scene is
// kept and only errors are returned.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.bench.Replace(s)

	for _, v := range scene.Validate(s) {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: v.Error()})
	}
	meshes, warnings := a.meshes(s, a.bench.Selected())
	result.Meshes = meshes
	result.Warnings = append(result.Warnings, warnings...)
	return result
}

// meshes tessellates s. Primitives that cannot be meshed are reported as
// warnings and left out.
func (a *App) meshes(s scene.Scene, selected scene.ID) ([]MeshData, []EvalErrorData) {
	out := []MeshData{}
	var warnings []EvalErrorData

	meshes, err := tessellate.Tessellate(s, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		for _, line := range strings.Split(err.Error(), "\n") {
			warnings = append(warnings, EvalErrorData{Message: line})
		}
	}
	for _, m := range meshes {
		color, ok := materialColors[m.Material]
		if !ok {
			color = fallbackColor
		}
		out = append(out, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    color,
			Selected: m.PartName == string(selected),
		})
	}
	return out, warnings
}

// Meshes tessellates the current scene for the viewport.
func (a *App) Meshes() []MeshData {
	out, _ := a.meshes(a.bench.Scene(), a.bench.Selected())
	return out
}

// Scene returns the current scene for the property panel.
func (a *App) Scene() SceneData {
	s := a.bench.Scene()
	data := SceneData{
		Primitives: make([]PrimitiveData, 0, s.Len()),
		Selected:   string(a.bench.Selected()),
	}
	for _, e := range s.Entries() {
		data.Primitives = append(data.Primitives, primitiveData(e.ID, e.Primitive))
	}
	return data
}

func primitiveData(id scene.ID, p scene.Primitive) PrimitiveData {
	d := PrimitiveData{
		ID:       string(id),
		Kind:     p.Kind().String(),
		Material: p.MaterialOf().String(),
	}
	c := p.Center()
	d.Position = [3]float64{c.X, c.Y, c.Z}
	switch v := p.(type) {
	case scene.Cylinder:
		d.Radius = v.Radius()
		d.Height = v.Height
		d.Orientation = [3]float64{v.Orientation.X, v.Orientation.Y, v.Orientation.Z}
	case scene.Sphere:
		d.Radius = v.Radius
	}
	return d
}

// Collisions returns every colliding pair in the current scene.
func (a *App) Collisions() []PairData {
	return pairData(a.bench.Collisions())
}

func pairData(pairs []collide.Pair) []PairData {
	out := make([]PairData, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, PairData{A: string(p.A), B: string(p.B)})
	}
	return out
}

// Export writes the current scene through the save dialog, asking first
// when primitives collide.
func (a *App) Export() ActionResult {
	pairs, err := a.bench.Export(a.dialogCtx())
	res := ActionResult{Collisions: pairData(pairs), Warnings: []string{}}
	switch {
	case errors.Is(err, workbench.ErrCanceled):
		res.Canceled = true
		res.Message = "export canceled"
	case err != nil:
		log.Printf("Export error: %v", err)
		res.Message = err.Error()
	default:
		res.OK = true
		res.Message = "exported"
	}
	return res
}

// Import replaces the scene with a file chosen through the open dialog.
// The scene is untouched unless the file holds at least one body.
func (a *App) Import() ActionResult {
	parsed, err := a.bench.Import(a.dialogCtx())
	res := ActionResult{Collisions: []PairData{}, Warnings: []string{}}
	switch {
	case errors.Is(err, workbench.ErrCanceled):
		res.Canceled = true
		res.Message = "import canceled"
	case errors.Is(err, codec.ErrEmptyScene):
		res.Message = "no cylinders or spheres found in file"
	case err != nil:
		log.Printf("Import error: %v", err)
		res.Message = err.Error()
	default:
		res.OK = true
		res.Message = "imported"
		for _, w := range parsed.Warnings {
			res.Warnings = append(res.Warnings, w.String())
		}
	}
	return res
}

// Select makes id the active primitive.
func (a *App) Select(id string) error {
	return a.bench.Select(scene.ID(id))
}

// SetRadius sets the radius of a sphere, or both radii of a cylinder.
func (a *App) SetRadius(id string, r float64) error {
	return a.bench.SetRadius(scene.ID(id), r)
}

// SetMaterial changes the material of id.
func (a *App) SetMaterial(id string, material string) error {
	m, err := scene.ParseMaterial(material)
	if err != nil {
		return err
	}
	return a.bench.SetMaterial(scene.ID(id), m)
}

// AddCylinder appends a default cylinder and returns its id.
func (a *App) AddCylinder() string {
	return string(a.bench.Add(scene.NewCylinder(1, 2, scene.Vec3{}, scene.Vec3{}, scene.Concrete)))
}

// AddSphere appends a unit sphere and returns its id.
func (a *App) AddSphere() string {
	return string(a.bench.Add(scene.Sphere{Radius: 1, Material: scene.Concrete}))
}

// Remove deletes id from the scene.
func (a *App) Remove(id string) error {
	return a.bench.Remove(scene.ID(id))
}
