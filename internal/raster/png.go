// Package raster replays a chart surface onto the go-chart raster renderer to
// produce PNG images.
package raster

import (
	"bytes"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/GoPolymarket/forecastviz/internal/geometry"
	"github.com/GoPolymarket/forecastviz/internal/surface"
)

// Background is painted under every chart.
var Background = surface.RGB(255, 255, 255)

func toDrawing(c surface.Color) drawing.Color {
	a := math.Round(c.A * 255)
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}

func px(v float64) int { return int(math.Round(v)) }

type painter struct {
	r chart.Renderer
	s surface.Surface
}

func (p painter) reset() {
	p.r.SetFillColor(drawing.ColorTransparent)
	p.r.SetStrokeColor(drawing.ColorTransparent)
	p.r.SetStrokeWidth(0)
	p.r.SetStrokeDashArray(nil)
}

func (p painter) trace(path geometry.Path) {
	for _, c := range path {
		switch c.Op {
		case geometry.MoveTo:
			p.r.MoveTo(px(c.X), px(c.Y))
		case geometry.LineTo:
			p.r.LineTo(px(c.X), px(c.Y))
		case geometry.Close:
			p.r.Close()
		}
	}
}

func (p painter) VisitPath(e surface.Path) {
	if len(e.Geometry) == 0 {
		return
	}
	p.reset()
	fill, stroke := !e.Fill.None(), !e.Stroke.None()
	if fill {
		p.r.SetFillColor(toDrawing(e.Fill))
	}
	if stroke {
		p.r.SetStrokeColor(toDrawing(e.Stroke))
		p.r.SetStrokeWidth(e.StrokeWidth)
	}
	p.trace(e.Geometry)
	switch {
	case fill && stroke:
		p.r.FillStroke()
	case fill:
		p.r.Fill()
	case stroke:
		p.r.Stroke()
	}
}

func (p painter) VisitLine(e surface.Line) {
	p.reset()
	p.r.SetStrokeColor(toDrawing(e.Stroke))
	w := e.StrokeWidth
	if w <= 0 {
		w = 1
	}
	p.r.SetStrokeWidth(w)
	if len(e.Dash) > 0 {
		p.r.SetStrokeDashArray(e.Dash)
	}
	p.r.MoveTo(px(e.X1), px(e.Y1))
	p.r.LineTo(px(e.X2), px(e.Y2))
	p.r.Stroke()
}

func (p painter) VisitCircle(e surface.Circle) {
	p.reset()
	p.r.SetFillColor(toDrawing(e.Fill))
	p.r.Circle(e.R, px(e.CX), px(e.CY))
	p.r.Fill()
}

func (p painter) VisitCell(e surface.Cell) {
	x, y, w, h := p.s.CellBox(e)
	p.rect(x, y, w, h, e.Fill)
}

func (p painter) rect(x, y, w, h float64, fill surface.Color) {
	p.reset()
	p.r.SetFillColor(toDrawing(fill))
	p.r.MoveTo(px(x), px(y))
	p.r.LineTo(px(x+w), px(y))
	p.r.LineTo(px(x+w), px(y+h))
	p.r.LineTo(px(x), px(y+h))
	p.r.Close()
	p.r.Fill()
}

// Write rasterizes s and writes it to w as PNG.
func Write(w io.Writer, s surface.Surface) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("raster: invalid surface size %dx%d", s.Width, s.Height)
	}
	r, err := chart.PNG(s.Width, s.Height)
	if err != nil {
		return fmt.Errorf("raster: new renderer: %w", err)
	}
	p := painter{r: r, s: s}
	p.rect(0, 0, float64(s.Width), float64(s.Height), Background)
	s.Walk(p)
	if err := r.Save(w); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// PNG rasterizes s into a byte slice.
func PNG(s surface.Surface) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
