// Package codec reads and writes the line-oriented geometry text format
// consumed by the external analysis tool.
//
// A file lists bodies (rcc for cylinders, sph for spheres), one zone per
// body, and a single line of material codes. Bodies, zones and material
// codes share one running index and one order; the material line is the
// only link between a body and its material.
package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pohani/3dvisual/pkg/orient"
	"github.com/pohani/3dvisual/pkg/scene"
)

const (
	// BodyEnd terminates the body section.
	BodyEnd = "end body"

	// ZoneEnd terminates the zone section.
	ZoneEnd = "end zone"

	// Footer is the last line of every exported file.
	Footer = "* end of geometry *"

	// zoneGroup is the fixed group id written on every zone line.
	zoneGroup = 1
)

// Export serializes s. Output is deterministic for a given scene.
func Export(s scene.Scene) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = Encode(&buf, s)
	return buf.Bytes()
}

// Encode writes s to w. Cylinders come first, then spheres, each group in
// insertion order, numbered from 1 across both kinds. Degenerate geometry
// is written as is: a zero-length axis produces NaN fields rather than an
// error.
func Encode(w io.Writer, s scene.Scene) error {
	bw := bufio.NewWriter(w)

	cylinders := s.Cylinders()
	spheres := s.Spheres()
	codes := make([]string, 0, len(cylinders)+len(spheres))

	index := 0
	for _, e := range cylinders {
		index++
		c := e.Cylinder
		dir := orient.Direction(c.Orientation)
		base := c.Position.Sub(dir.MulScalar(0.5 * c.Height))
		span := dir.MulScalar(c.Height)
		fmt.Fprintf(bw, "rcc %d %s %s %s %s %s %s %s\n", index,
			real6(base.X), real6(base.Y), real6(base.Z),
			real6(span.X), real6(span.Y), real6(span.Z),
			real6(c.Radius()))
		codes = append(codes, strconv.Itoa(c.Material.Code()))
	}
	for _, e := range spheres {
		index++
		sp := e.Sphere
		fmt.Fprintf(bw, "sph %d %s %s %s %s\n", index,
			real6(sp.Position.X), real6(sp.Position.Y), real6(sp.Position.Z),
			real6(sp.Radius))
		codes = append(codes, strconv.Itoa(sp.Material.Code()))
	}
	fmt.Fprintln(bw, BodyEnd)

	for i := 1; i <= index; i++ {
		fmt.Fprintf(bw, "zn%d %d %d\n", i, zoneGroup, i)
	}
	fmt.Fprintln(bw, ZoneEnd)

	fmt.Fprintln(bw, strings.Join(codes, " "))
	fmt.Fprintln(bw, Footer)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: write: %w", err)
	}
	return nil
}

// real6 formats f with six decimals.
func real6(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
