package codec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pohani/3dvisual/pkg/orient"
	"github.com/pohani/3dvisual/pkg/scene"
)

// ErrEmptyScene is returned when a buffer holds no rcc or sph record.
var ErrEmptyScene = errors.New("codec: no rcc or sph records found")

// WarningKind classifies a non-fatal import finding.
type WarningKind int

const (
	// WarnUnrecognized marks a line that was skipped.
	WarnUnrecognized WarningKind = iota
	// WarnMaterialMismatch marks an all-integer line whose token count
	// differs from the number of bodies read so far. It is ignored.
	WarnMaterialMismatch
	// WarnMalformedNumber marks a body record with a missing or
	// unparsable number. The field is read as NaN.
	WarnMalformedNumber
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnrecognized:
		return "unrecognized"
	case WarnMaterialMismatch:
		return "material-mismatch"
	case WarnMalformedNumber:
		return "malformed-number"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal finding tied to a 1-based line number.
type Warning struct {
	Line int
	Kind WarningKind
	Text string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Text)
}

// Result is a successfully parsed buffer.
type Result struct {
	Scene    scene.Scene
	Selected scene.ID // first cylinder, or first sphere when there is none
	Warnings []Warning
}

// materialLine matches one or more whitespace separated unsigned integers
// and nothing else.
var materialLine = regexp.MustCompile(`^\d+(?:\s+\d+)*$`)

// Decode reads r to the end and parses it with Import.
func Decode(r io.Reader) (Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("codec: read: %w", err)
	}
	return Import(string(raw))
}

// Import parses a whole buffer. Nothing is returned unless the entire
// buffer was consumed and at least one body was recognized; otherwise the
// error is ErrEmptyScene.
//
// Lines are trimmed and classified by their first token. An all-integer
// line is taken as the material list when its token count equals the
// number of bodies read so far, even if it was not meant as one; when
// several lines qualify, the last one wins. Codes apply positionally in
// file order and unknown codes mean concrete.
//
// Numbers are not validated: a missing or malformed field becomes NaN and
// is kept, with a warning.
func Import(text string) (Result, error) {
	b := scene.NewBuilder()
	var warnings []Warning

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch {
		case fields[0] == "rcc":
			c, bad := parseRCC(fields)
			if bad {
				warnings = append(warnings, Warning{Line: lineNo, Kind: WarnMalformedNumber, Text: line})
			}
			b.Append(c)

		case fields[0] == "sph":
			s, bad := parseSPH(fields)
			if bad {
				warnings = append(warnings, Warning{Line: lineNo, Kind: WarnMalformedNumber, Text: line})
			}
			b.Append(s)

		case materialLine.MatchString(line):
			if len(fields) != b.Len() {
				warnings = append(warnings, Warning{
					Line: lineNo,
					Kind: WarnMaterialMismatch,
					Text: fmt.Sprintf("%d material codes for %d bodies", len(fields), b.Len()),
				})
				continue
			}
			for j, tok := range fields {
				code, err := strconv.Atoi(tok)
				if err != nil {
					code = 0
				}
				b.SetMaterial(j, scene.MaterialFromCode(code))
			}

		case isStructural(line, fields):
			// Section terminators, zone records and the footer carry
			// nothing that is not implied by the bodies.

		default:
			warnings = append(warnings, Warning{Line: lineNo, Kind: WarnUnrecognized, Text: line})
		}
	}

	if b.Len() == 0 {
		return Result{}, ErrEmptyScene
	}

	s := b.Build()
	selected, ok := s.First(scene.KindCylinder)
	if !ok {
		selected, _ = s.First(scene.KindSphere)
	}
	return Result{Scene: s, Selected: selected, Warnings: warnings}, nil
}

func isStructural(line string, fields []string) bool {
	switch line {
	case BodyEnd, ZoneEnd, Footer:
		return true
	}
	return strings.HasPrefix(fields[0], "zn")
}

// parseRCC reads "rcc <n> bx by bz dx dy dz r". The axis vector gives the
// height and center; orientation is rebuilt from its direction with Z
// rotation zero.
func parseRCC(fields []string) (scene.Cylinder, bool) {
	nums, bad := numbers(fields, 2, 7)
	base := scene.Vec3{X: nums[0], Y: nums[1], Z: nums[2]}
	span := scene.Vec3{X: nums[3], Y: nums[4], Z: nums[5]}

	height := span.Length()
	center := base.Add(span.MulScalar(0.5))
	orientation := orient.DirectionToEuler(span)

	return scene.NewCylinder(nums[6], height, center, orientation, scene.Concrete), bad
}

// parseSPH reads "sph <n> cx cy cz r".
func parseSPH(fields []string) (scene.Sphere, bool) {
	nums, bad := numbers(fields, 2, 4)
	return scene.Sphere{
		Radius:   nums[3],
		Position: scene.Vec3{X: nums[0], Y: nums[1], Z: nums[2]},
		Material: scene.Concrete,
	}, bad
}

// numbers parses count floats starting at fields[from]. Missing or
// malformed tokens become NaN and set bad.
func numbers(fields []string, from, count int) ([]float64, bool) {
	out := make([]float64, count)
	bad := false
	for i := range out {
		j := from + i
		if j >= len(fields) {
			out[i] = math.NaN()
			bad = true
			continue
		}
		f, err := strconv.ParseFloat(fields[j], 64)
		if err != nil {
			out[i] = math.NaN()
			bad = true
			continue
		}
		out[i] = f
	}
	return out, bad
}
