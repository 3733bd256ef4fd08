package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/pohani/3dvisual/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites scene script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: radius-top -> radius_top
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpVec3 wraps a scene.Vec3 so it can be passed between builtins.
type sexpVec3 struct {
	vec scene.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpPrimitive is returned by cylinder and sphere. index is the position
// in the scene being built.
type sexpPrimitive struct {
	index int
	prim  scene.Primitive
}

func (p *sexpPrimitive) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s #%d)", p.prim.Kind(), p.index)
}
func (p *sexpPrimitive) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// only rejects keywords outside allowed and any positional argument.
func (a kwArgs) only(fn string, allowed ...string) error {
	if len(a.positional) > 0 {
		return fmt.Errorf("%s: unexpected positional argument %s", fn, a.positional[0].SexpString(nil))
	}
	for name := range a.kw {
		found := false
		for _, want := range allowed {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: unknown keyword :%s", fn, name)
		}
	}
	return nil
}

// float reads keyword name as a number, or returns def when absent.
func (a kwArgs) float(fn, name string, def float64) (float64, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", fn, name, err)
	}
	return f, nil
}

// vec reads keyword name as a vec3, or returns the zero vector when absent.
func (a kwArgs) vec(fn, name string) (scene.Vec3, error) {
	v, ok := a.kw[name]
	if !ok {
		return scene.Vec3{}, nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return scene.Vec3{}, fmt.Errorf("%s: %s: %w", fn, name, err)
	}
	return vec, nil
}

// material reads the material keyword, defaulting to concrete.
func (a kwArgs) material(fn string) (scene.Material, error) {
	v, ok := a.kw["material"]
	if !ok {
		return scene.Concrete, nil
	}
	name, err := toKeywordString(v)
	if err != nil {
		return 0, fmt.Errorf("%s: material: %w", fn, err)
	}
	m, err := scene.ParseMaterial(name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", fn, err)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_steel) and plain strings ("steel").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (scene.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return scene.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// Defaults applied when a script omits a dimension. They match the
// startup cylinder.
const (
	defaultRadius = 1.0
	defaultHeight = 2.0
)

// registerBuiltins installs the scene builtins into a zygomys environment.
// Every cylinder and sphere call appends to b, so the scene comes out in
// call order.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *scene.Builder) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, arg := range args {
			f, err := toFloat64(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			xyz[i] = f
		}
		return &sexpVec3{vec: scene.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :radius 1 :height 2 :at (vec3 0 0 0)
	//           :rotation (vec3 0.5 0 0) :material :steel)
	//
	// :rotation is in units of pi, applied about X, then Y, then Z.
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("cylinder", "radius", "height", "at", "rotation", "material"); err != nil {
			return zygo.SexpNull, err
		}

		r, err := pa.float("cylinder", "radius", defaultRadius)
		if err != nil {
			return zygo.SexpNull, err
		}
		h, err := pa.float("cylinder", "height", defaultHeight)
		if err != nil {
			return zygo.SexpNull, err
		}
		at, err := pa.vec("cylinder", "at")
		if err != nil {
			return zygo.SexpNull, err
		}
		rot, err := pa.vec("cylinder", "rotation")
		if err != nil {
			return zygo.SexpNull, err
		}
		m, err := pa.material("cylinder")
		if err != nil {
			return zygo.SexpNull, err
		}

		c := scene.NewCylinder(r, h, at, rot, m)
		b.Append(c)
		return &sexpPrimitive{index: b.Len() - 1, prim: c}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 1 :at (vec3 3 0 0) :material :wood)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.only("sphere", "radius", "at", "material"); err != nil {
			return zygo.SexpNull, err
		}

		r, err := pa.float("sphere", "radius", defaultRadius)
		if err != nil {
			return zygo.SexpNull, err
		}
		at, err := pa.vec("sphere", "at")
		if err != nil {
			return zygo.SexpNull, err
		}
		m, err := pa.material("sphere")
		if err != nil {
			return zygo.SexpNull, err
		}

		s := scene.Sphere{Radius: r, Position: at, Material: m}
		b.Append(s)
		return &sexpPrimitive{index: b.Len() - 1, prim: s}, nil
	})
}
