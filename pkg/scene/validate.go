package scene

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a finding describes a broken
// primitive or merely a suspicious one.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // geometry is degenerate
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ID       ID                 // which primitive has the problem
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.ID, e.Message)
}

// Validate checks every primitive for degenerate or out-of-range values
// and returns the findings in insertion order. It is advisory: nothing in
// the export path refuses a scene because of it. The scene is never
// mutated.
func Validate(s Scene) []ValidationError {
	var errs []ValidationError
	for _, e := range s.Entries() {
		switch p := e.Primitive.(type) {
		case Cylinder:
			errs = append(errs, validateCylinder(e.ID, p)...)
		case Sphere:
			errs = append(errs, validateSphere(e.ID, p)...)
		}
	}
	return errs
}

func validateCylinder(id ID, c Cylinder) []ValidationError {
	var errs []ValidationError

	if !finite(c.RadiusTop) || c.RadiusTop <= 0 {
		errs = append(errs, ValidationError{
			ID:       id,
			Message:  fmt.Sprintf("radius is %.4f, must be positive", c.RadiusTop),
			Severity: SeverityError,
		})
	}
	if c.RadiusTop != c.RadiusBottom {
		errs = append(errs, ValidationError{
			ID:       id,
			Message:  fmt.Sprintf("top radius %.4f differs from bottom radius %.4f", c.RadiusTop, c.RadiusBottom),
			Severity: SeverityError,
		})
	}
	if !finite(c.Height) || c.Height <= 0 {
		errs = append(errs, ValidationError{
			ID:       id,
			Message:  fmt.Sprintf("height is %.4f, must be positive", c.Height),
			Severity: SeverityError,
		})
	}
	if !finiteVec(c.Position) {
		errs = append(errs, ValidationError{
			ID:       id,
			Message:  "position is not a finite point",
			Severity: SeverityError,
		})
	}

	axes := [3]struct {
		name string
		v    float64
	}{{"x", c.Orientation.X}, {"y", c.Orientation.Y}, {"z", c.Orientation.Z}}
	for _, a := range axes {
		if !finite(a.v) || a.v < -1 || a.v > 1 {
			errs = append(errs, ValidationError{
				ID:       id,
				Message:  fmt.Sprintf("rotation %s is %.4f, must lie in [-1, 1]", a.name, a.v),
				Severity: SeverityWarning,
			})
		}
	}
	if !c.Material.Valid() {
		errs = append(errs, ValidationError{
			ID:       id,
			Message:  fmt.Sprintf("unknown material %d exports as concrete", int(c.Material)),
			Severity: SeverityWarning,
		})
	}

	return errs
}

func validateSphere(id ID, s Sphere) []ValidationError {
	var errs []ValidationError

	if !finite(s.Radius) || s.Radius <= 0 {
		errs = append(errs, ValidationError{
			ID:       id,
			Message:  fmt.Sprintf("radius is %.4f, must be positive", s.Radius),
			Severity: SeverityError,
		})
	}
	if !finiteVec(s.Position) {
		errs = append(errs, ValidationError{
			ID:       id,
			Message:  "position is not a finite point",
			Severity: SeverityError,
		})
	}
	if !s.Material.Valid() {
		errs = append(errs, ValidationError{
			ID:       id,
			Message:  fmt.Sprintf("unknown material %d exports as concrete", int(s.Material)),
			Severity: SeverityWarning,
		})
	}

	return errs
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v Vec3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}
