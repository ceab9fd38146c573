// Package surface describes a fixed-size drawing surface independently of the
// backend that will encode or rasterize it.
package surface

import (
	"fmt"
	"strconv"

	"github.com/GoPolymarket/forecastviz/internal/geometry"
)

// Color is an sRGB color with alpha in [0,1]. The zero value paints nothing.
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 1} }

// RGBA returns a translucent color.
func RGBA(r, g, b uint8, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// None reports whether the color paints nothing.
func (c Color) None() bool { return c.A <= 0 }

// CSS encodes the color for SVG and HTML attributes.
func (c Color) CSS() string {
	switch {
	case c.None():
		return "none"
	case c.A >= 1:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
	}
}

// Element is one drawable item of a surface.
type Element interface {
	Accept(v Visitor)
}

// Visitor receives surface elements in paint order.
type Visitor interface {
	VisitPath(p Path)
	VisitLine(l Line)
	VisitCircle(c Circle)
	VisitCell(c Cell)
}

// Path is a filled and/or stroked path element.
type Path struct {
	Geometry    geometry.Path
	Fill        Color
	Stroke      Color
	StrokeWidth float64
}

// D returns the SVG path data.
func (p Path) D() string { return p.Geometry.String() }

func (p Path) Accept(v Visitor) { v.VisitPath(p) }

// Line is a straight segment, optionally dashed.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Color
	StrokeWidth    float64
	Dash           []float64
}

func (l Line) Accept(v Visitor) { v.VisitLine(l) }

// Circle is a filled dot.
type Circle struct {
	CX, CY, R float64
	Fill      Color
}

func (c Circle) Accept(v Visitor) { v.VisitCircle(c) }

// Cell is one discrete colored grid cell. Its pixel box is derived from the
// surface size and grid dimensions.
type Cell struct {
	Row, Col int
	Fill     Color
	Label    string
}

func (c Cell) Accept(v Visitor) { v.VisitCell(c) }

// Surface is the complete description of one chart drawing.
type Surface struct {
	Width    int
	Height   int
	Label    string
	Elements []Element

	// Rows and Cols are set for grid surfaces.
	Rows int
	Cols int
}

// Add appends elements in paint order.
func (s *Surface) Add(e ...Element) {
	s.Elements = append(s.Elements, e...)
}

// Walk visits every element in paint order.
func (s Surface) Walk(v Visitor) {
	for _, e := range s.Elements {
		e.Accept(v)
	}
}

// Paths returns the path elements in paint order.
func (s Surface) Paths() []Path {
	var out []Path
	for _, e := range s.Elements {
		if p, ok := e.(Path); ok {
			out = append(out, p)
		}
	}
	return out
}

// CellBox returns the pixel box of a grid cell.
func (s Surface) CellBox(c Cell) (x, y, w, h float64) {
	if s.Rows <= 0 || s.Cols <= 0 {
		return 0, 0, 0, 0
	}
	w = float64(s.Width) / float64(s.Cols)
	h = float64(s.Height) / float64(s.Rows)
	return float64(c.Col) * w, float64(c.Row) * h, w, h
}
