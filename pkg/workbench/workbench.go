// Package workbench owns the current scene and runs the import and export
// workflows against external collaborators (file dialogs and a yes/no
// prompt).
//
// The scene is only ever replaced as a whole. Readers such as a renderer
// call Scene and get a snapshot that no later edit can change.
package workbench

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/pohani/3dvisual/pkg/codec"
	"github.com/pohani/3dvisual/pkg/collide"
	"github.com/pohani/3dvisual/pkg/scene"
)

var (
	// ErrCanceled is returned when the user backs out of a dialog.
	ErrCanceled = errors.New("workbench: canceled by user")

	// ErrImportInProgress is returned when Import is called while another
	// import is still waiting for its file.
	ErrImportInProgress = errors.New("workbench: import already in progress")

	// ErrUnknownPrimitive is returned by edits naming a missing id.
	ErrUnknownPrimitive = errors.New("workbench: unknown primitive")
)

// DefaultFilename is suggested to the save dialog when none is configured.
const DefaultFilename = "geo.dat"

// Opener yields the full text of a user-selected file. It returns
// ErrCanceled when the user dismisses the dialog.
type Opener interface {
	Open(ctx context.Context) (name string, text string, err error)
}

// Saver stores an exported payload under a suggested filename. It returns
// ErrCanceled when the user dismisses the dialog.
type Saver interface {
	Save(ctx context.Context, filename string, payload []byte) error
}

// Confirmer asks the user a yes/no question. It reports true to proceed.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// state is the value swapped atomically on every change.
type state struct {
	scene    scene.Scene
	selected scene.ID
}

// Workbench is the single owner of the scene.
type Workbench struct {
	cur       atomic.Pointer[state]
	importing atomic.Bool

	opener    Opener
	saver     Saver
	confirmer Confirmer
	filename  string
}

// Option configures a Workbench.
type Option func(*Workbench)

// WithFilename sets the filename suggested when saving.
func WithFilename(name string) Option {
	return func(w *Workbench) {
		if name != "" {
			w.filename = name
		}
	}
}

// New returns a workbench holding s, with the first cylinder (or sphere)
// selected.
func New(s scene.Scene, opener Opener, saver Saver, confirmer Confirmer, opts ...Option) *Workbench {
	w := &Workbench{
		opener:    opener,
		saver:     saver,
		confirmer: confirmer,
		filename:  DefaultFilename,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.cur.Store(&state{scene: s, selected: firstSelectable(s)})
	return w
}

func firstSelectable(s scene.Scene) scene.ID {
	if id, ok := s.First(scene.KindCylinder); ok {
		return id
	}
	id, _ := s.First(scene.KindSphere)
	return id
}

// Scene returns the current scene.
func (w *Workbench) Scene() scene.Scene {
	return w.cur.Load().scene
}

// Selected returns the active primitive id, or "" when nothing is selected.
func (w *Workbench) Selected() scene.ID {
	return w.cur.Load().selected
}

// Importing reports whether an import is waiting on its file.
func (w *Workbench) Importing() bool {
	return w.importing.Load()
}

// Replace swaps in a whole new scene and selects its first primitive.
func (w *Workbench) Replace(s scene.Scene) {
	w.cur.Store(&state{scene: s, selected: firstSelectable(s)})
}

// Update applies fn to the current scene and stores the result. The
// selection is kept when it still exists.
func (w *Workbench) Update(fn func(scene.Scene) (scene.Scene, error)) error {
	old := w.cur.Load()
	next, err := fn(old.scene)
	if err != nil {
		return err
	}
	sel := old.selected
	if !next.Has(sel) {
		sel = firstSelectable(next)
	}
	w.cur.Store(&state{scene: next, selected: sel})
	return nil
}

// Select makes id the active primitive.
func (w *Workbench) Select(id scene.ID) error {
	old := w.cur.Load()
	if !old.scene.Has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownPrimitive, id)
	}
	w.cur.Store(&state{scene: old.scene, selected: id})
	return nil
}

// SetPrimitive replaces the primitive stored under id.
func (w *Workbench) SetPrimitive(id scene.ID, p scene.Primitive) error {
	return w.Update(func(s scene.Scene) (scene.Scene, error) {
		old, ok := s.Get(id)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrUnknownPrimitive, id)
		}
		if old.Kind() != p.Kind() {
			return s, fmt.Errorf("workbench: %s is a %s, not a %s", id, old.Kind(), p.Kind())
		}
		return s.With(id, p), nil
	})
}

// SetRadius sets the radius of a sphere, or both radii of a cylinder.
func (w *Workbench) SetRadius(id scene.ID, r float64) error {
	return w.Update(func(s scene.Scene) (scene.Scene, error) {
		p, ok := s.Get(id)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrUnknownPrimitive, id)
		}
		switch v := p.(type) {
		case scene.Cylinder:
			return s.With(id, v.WithRadius(r)), nil
		case scene.Sphere:
			v.Radius = r
			return s.With(id, v), nil
		}
		return s, fmt.Errorf("workbench: %s has unsupported type %T", id, p)
	})
}

// SetMaterial changes the material of id.
func (w *Workbench) SetMaterial(id scene.ID, m scene.Material) error {
	return w.Update(func(s scene.Scene) (scene.Scene, error) {
		p, ok := s.Get(id)
		if !ok {
			return s, fmt.Errorf("%w: %s", ErrUnknownPrimitive, id)
		}
		return s.With(id, scene.WithMaterial(p, m)), nil
	})
}

// Add appends p under a new id and selects it.
func (w *Workbench) Add(p scene.Primitive) scene.ID {
	old := w.cur.Load()
	next, id := old.scene.Add(p)
	w.cur.Store(&state{scene: next, selected: id})
	return id
}

// Remove deletes id from the scene.
func (w *Workbench) Remove(id scene.ID) error {
	return w.Update(func(s scene.Scene) (scene.Scene, error) {
		if !s.Has(id) {
			return s, fmt.Errorf("%w: %s", ErrUnknownPrimitive, id)
		}
		return s.Without(id), nil
	})
}

// Collisions runs the collision scan on the current scene.
func (w *Workbench) Collisions() []collide.Pair {
	return collide.Detect(w.Scene())
}

// Export serializes a snapshot of the scene and hands it to the saver.
// When any pair collides the user is asked first; declining returns
// ErrCanceled and nothing is saved.
func (w *Workbench) Export(ctx context.Context) ([]collide.Pair, error) {
	snap := w.Scene()

	pairs := collide.Detect(snap)
	if len(pairs) > 0 {
		ok, err := w.confirmer.Confirm(ctx, "Collisions detected", collisionMessage(pairs))
		if err != nil {
			return pairs, fmt.Errorf("workbench: confirm: %w", err)
		}
		if !ok {
			return pairs, ErrCanceled
		}
	}

	if err := w.saver.Save(ctx, w.filename, codec.Export(snap)); err != nil {
		if errors.Is(err, ErrCanceled) {
			return pairs, err
		}
		return pairs, fmt.Errorf("workbench: save: %w", err)
	}
	return pairs, nil
}

func collisionMessage(pairs []collide.Pair) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d colliding pair(s):\n", len(pairs))
	for _, p := range pairs {
		fmt.Fprintf(&sb, "  %s - %s\n", p.A, p.B)
	}
	sb.WriteString("Export anyway?")
	return sb.String()
}

// Import asks the opener for a file and replaces the scene with its
// contents. Only one import may be pending at a time. On any failure,
// including codec.ErrEmptyScene, the scene is left untouched.
func (w *Workbench) Import(ctx context.Context) (codec.Result, error) {
	if !w.importing.CompareAndSwap(false, true) {
		return codec.Result{}, ErrImportInProgress
	}
	defer w.importing.Store(false)

	name, text, err := w.opener.Open(ctx)
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			return codec.Result{}, err
		}
		return codec.Result{}, fmt.Errorf("workbench: open: %w", err)
	}

	res, err := codec.Import(text)
	if err != nil {
		return codec.Result{}, fmt.Errorf("workbench: import %s: %w", name, err)
	}
	for _, warn := range res.Warnings {
		log.Printf("import %s: %s", name, warn)
	}

	w.cur.Store(&state{scene: res.Scene, selected: res.Selected})
	return res, nil
}
