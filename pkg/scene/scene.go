// Package scene defines the primitive model: cylinders and spheres keyed by
// identifier in insertion order.
//
// A Scene is an immutable value. Every mutator returns a new Scene that
// shares no mutable storage with its receiver, so a reader holding an older
// Scene never observes a partial update. Insertion order is significant:
// it fixes the line order of exported files and the positional link between
// primitives and their material codes.
package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a primitive within a scene, e.g. "cylinder1".
type ID string

// NewID returns the identifier of the n-th primitive of kind k.
func NewID(k Kind, n int) ID {
	return ID(fmt.Sprintf("%s%d", k, n))
}

// Entry pairs a primitive with its identifier.
type Entry struct {
	ID        ID
	Primitive Primitive
}

// Scene is an insertion-ordered mapping from ID to Primitive.
// The zero value is an empty scene.
type Scene struct {
	order []ID
	items map[ID]Primitive
}

// New returns an empty scene.
func New() Scene {
	return Scene{}
}

// Default returns the scene shown at startup: one unit cylinder of height 2
// at the origin.
func Default() Scene {
	s, _ := New().Add(NewCylinder(1, 2, Vec3{}, Vec3{}, Concrete))
	return s
}

// Len returns the number of primitives.
func (s Scene) Len() int {
	return len(s.order)
}

// Get returns the primitive with the given id.
func (s Scene) Get(id ID) (Primitive, bool) {
	p, ok := s.items[id]
	return p, ok
}

// Has reports whether id is present.
func (s Scene) Has(id ID) bool {
	_, ok := s.items[id]
	return ok
}

// IDs returns identifiers in insertion order.
func (s Scene) IDs() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}

// Entries returns all primitives in insertion order.
func (s Scene) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, Entry{ID: id, Primitive: s.items[id]})
	}
	return out
}

// CylinderEntry is a cylinder together with its identifier.
type CylinderEntry struct {
	ID       ID
	Cylinder Cylinder
}

// SphereEntry is a sphere together with its identifier.
type SphereEntry struct {
	ID     ID
	Sphere Sphere
}

// Cylinders returns the cylinders in insertion order.
func (s Scene) Cylinders() []CylinderEntry {
	var out []CylinderEntry
	for _, id := range s.order {
		if c, ok := s.items[id].(Cylinder); ok {
			out = append(out, CylinderEntry{ID: id, Cylinder: c})
		}
	}
	return out
}

// Spheres returns the spheres in insertion order.
func (s Scene) Spheres() []SphereEntry {
	var out []SphereEntry
	for _, id := range s.order {
		if sp, ok := s.items[id].(Sphere); ok {
			out = append(out, SphereEntry{ID: id, Sphere: sp})
		}
	}
	return out
}

// First returns the first primitive of kind k in insertion order.
func (s Scene) First(k Kind) (ID, bool) {
	for _, id := range s.order {
		if s.items[id].Kind() == k {
			return id, true
		}
	}
	return "", false
}

// NextID returns an unused identifier for a new primitive of kind k.
func (s Scene) NextID(k Kind) ID {
	prefix := k.String()
	highest := 0
	for _, id := range s.order {
		rest, ok := strings.CutPrefix(string(id), prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > highest {
			highest = n
		}
	}
	return NewID(k, highest+1)
}

// clone returns a deep copy of the scene's storage.
func (s Scene) clone() Scene {
	out := Scene{
		order: make([]ID, len(s.order), len(s.order)+1),
		items: make(map[ID]Primitive, len(s.items)+1),
	}
	copy(out.order, s.order)
	for id, p := range s.items {
		out.items[id] = p
	}
	return out
}

// With returns a scene in which id maps to p. An existing id keeps its
// position in the order; a new id is appended.
func (s Scene) With(id ID, p Primitive) Scene {
	if p == nil {
		panic("scene: nil primitive")
	}
	out := s.clone()
	if _, exists := out.items[id]; !exists {
		out.order = append(out.order, id)
	}
	out.items[id] = p
	return out
}

// Without returns a scene with id removed. Removing a missing id returns
// an equal scene.
func (s Scene) Without(id ID) Scene {
	out := s.clone()
	if _, ok := out.items[id]; !ok {
		return out
	}
	delete(out.items, id)
	for i, oid := range out.order {
		if oid == id {
			out.order = append(out.order[:i], out.order[i+1:]...)
			break
		}
	}
	return out
}

// Add appends p under a freshly allocated identifier.
func (s Scene) Add(p Primitive) (Scene, ID) {
	id := s.NextID(p.Kind())
	return s.With(id, p), id
}

// Builder assembles a scene in encounter order, numbering identifiers per
// kind from 1.
type Builder struct {
	entries []Primitive
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Append adds p after every primitive appended so far.
func (b *Builder) Append(p Primitive) {
	b.entries = append(b.entries, p)
}

// Len returns the number of primitives appended.
func (b *Builder) Len() int {
	return len(b.entries)
}

// SetMaterial overrides the material of the i-th appended primitive.
func (b *Builder) SetMaterial(i int, m Material) {
	b.entries[i] = WithMaterial(b.entries[i], m)
}

// Build returns the assembled scene. The builder may keep being used; later
// appends do not affect scenes already built.
func (b *Builder) Build() Scene {
	out := Scene{
		order: make([]ID, 0, len(b.entries)),
		items: make(map[ID]Primitive, len(b.entries)),
	}
	counts := make(map[Kind]int)
	for _, p := range b.entries {
		k := p.Kind()
		counts[k]++
		id := NewID(k, counts[k])
		out.order = append(out.order, id)
		out.items[id] = p
	}
	return out
}
