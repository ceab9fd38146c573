// Package geometry converts numeric series into SVG path geometry.
//
// All functions are pure and safe for concurrent use.
package geometry

import (
	"strconv"
	"strings"
)

// Op is a path drawing command.
type Op byte

const (
	MoveTo Op = 'M'
	LineTo Op = 'L'
	Close  Op = 'Z'
)

// Command is one drawing step. X and Y are ignored for Close.
type Command struct {
	Op Op
	X  float64
	Y  float64
}

// Path is an ordered list of drawing commands.
type Path []Command

// String encodes the path as SVG path data with coordinates rounded to two
// decimals, e.g. "M0.00 50.00 L100.00 0.00". An empty path encodes as "".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	buf := make([]byte, 0, 16)
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		if c.Op == Close {
			continue
		}
		buf = strconv.AppendFloat(buf[:0], c.X, 'f', 2, 64)
		b.Write(buf)
		b.WriteByte(' ')
		buf = strconv.AppendFloat(buf[:0], c.Y, 'f', 2, 64)
		b.Write(buf)
	}
	return b.String()
}

// Closed reports whether the path ends with a close command.
func (p Path) Closed() bool {
	return len(p) > 0 && p[len(p)-1].Op == Close
}

// Line builds an open polyline through series. The caller supplies the value
// range so several series can share one scale.
func Line(series []float64, width, height, min, max float64) Path {
	if len(series) == 0 {
		return nil
	}
	p := make(Path, 0, len(series))
	return appendForward(p, series, width, height, min, max)
}

// Band builds a closed ribbon between lower and upper: the upper edge left to
// right, then the lower edge right to left, then a close command. Either
// series being empty yields an empty path.
func Band(lower, upper []float64, width, height, min, max float64) Path {
	if len(lower) == 0 || len(upper) == 0 {
		return nil
	}
	p := make(Path, 0, len(upper)+len(lower)+1)
	p = appendForward(p, upper, width, height, min, max)
	n := len(lower)
	for i := n - 1; i >= 0; i-- {
		p = append(p, Command{
			Op: LineTo,
			X:  MapIndexToX(i, n, width),
			Y:  MapValueToY(lower[i], min, max, height),
		})
	}
	return append(p, Command{Op: Close})
}

func appendForward(p Path, series []float64, width, height, min, max float64) Path {
	n := len(series)
	for i, v := range series {
		op := LineTo
		if i == 0 {
			op = MoveTo
		}
		p = append(p, Command{
			Op: op,
			X:  MapIndexToX(i, n, width),
			Y:  MapValueToY(v, min, max, height),
		})
	}
	return p
}

// BuildLinePath returns the SVG path data of Line.
func BuildLinePath(series []float64, width, height, min, max float64) string {
	return Line(series, width, height, min, max).String()
}

// BuildBandPath returns the SVG path data of Band.
func BuildBandPath(lower, upper []float64, width, height, min, max float64) string {
	return Band(lower, upper, width, height, min, max).String()
}
