package scene

import (
	"fmt"
	"strings"
)

// Material is the physical material of a primitive. The numeric value is
// the code written to geometry files.
type Material int

const (
	Concrete Material = iota + 1
	Steel
	Wood
	Standard
)

// Materials lists every material in code order.
var Materials = []Material{Concrete, Steel, Wood, Standard}

func (m Material) String() string {
	switch m {
	case Concrete:
		return "concrete"
	case Steel:
		return "steel"
	case Wood:
		return "wood"
	case Standard:
		return "standard"
	default:
		return fmt.Sprintf("Material(%d)", int(m))
	}
}

// Code returns the serialization integer for m. Unknown materials encode
// as concrete.
func (m Material) Code() int {
	switch m {
	case Concrete, Steel, Wood, Standard:
		return int(m)
	default:
		return int(Concrete)
	}
}

// Valid reports whether m is one of the known materials.
func (m Material) Valid() bool {
	switch m {
	case Concrete, Steel, Wood, Standard:
		return true
	default:
		return false
	}
}

// MaterialFromCode maps a file code to a material. Unmapped codes are
// concrete.
func MaterialFromCode(code int) Material {
	m := Material(code)
	if !m.Valid() {
		return Concrete
	}
	return m
}

// ParseMaterial accepts a material name, case-insensitive.
func ParseMaterial(name string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "concrete":
		return Concrete, nil
	case "steel":
		return Steel, nil
	case "wood":
		return Wood, nil
	case "standard":
		return Standard, nil
	}
	return 0, fmt.Errorf("unknown material %q, expected concrete, steel, wood or standard", name)
}
