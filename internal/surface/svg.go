package surface

import (
	"html"
	"strconv"
	"strings"
)

type svgWriter struct {
	b *strings.Builder
	s Surface
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dash(d []float64) string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}

func (w svgWriter) VisitPath(p Path) {
	w.b.WriteString(`<path d="` + p.D() + `" fill="` + p.Fill.CSS() + `"`)
	if !p.Stroke.None() {
		w.b.WriteString(` stroke="` + p.Stroke.CSS() + `" stroke-width="` + num(p.StrokeWidth) + `"`)
	}
	w.b.WriteString("/>")
}

func (w svgWriter) VisitLine(l Line) {
	w.b.WriteString(`<line x1="` + num(l.X1) + `" y1="` + num(l.Y1) + `" x2="` + num(l.X2) + `" y2="` + num(l.Y2) + `"`)
	w.b.WriteString(` stroke="` + l.Stroke.CSS() + `"`)
	if l.StrokeWidth > 0 {
		w.b.WriteString(` stroke-width="` + num(l.StrokeWidth) + `"`)
	}
	if len(l.Dash) > 0 {
		w.b.WriteString(` stroke-dasharray="` + dash(l.Dash) + `"`)
	}
	w.b.WriteString("/>")
}

func (w svgWriter) VisitCircle(c Circle) {
	w.b.WriteString(`<circle cx="` + num(c.CX) + `" cy="` + num(c.CY) + `" r="` + num(c.R) + `" fill="` + c.Fill.CSS() + `"/>`)
}

func (w svgWriter) VisitCell(c Cell) {
	x, y, cw, ch := w.s.CellBox(c)
	w.b.WriteString(`<rect x="` + num(x) + `" y="` + num(y) + `" width="` + num(cw) + `" height="` + num(ch) + `" fill="` + c.Fill.CSS() + `"`)
	if c.Label != "" {
		w.b.WriteString(` aria-label="` + html.EscapeString(c.Label) + `"`)
	}
	w.b.WriteString("/>")
}

// SVG encodes the surface as a standalone <svg> element.
func SVG(s Surface) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" class="chart-svg"`)
	b.WriteString(` viewBox="0 0 ` + strconv.Itoa(s.Width) + ` ` + strconv.Itoa(s.Height) + `"`)
	b.WriteString(` width="` + strconv.Itoa(s.Width) + `" height="` + strconv.Itoa(s.Height) + `"`)
	b.WriteString(` role="img"`)
	if s.Label != "" {
		b.WriteString(` aria-label="` + html.EscapeString(s.Label) + `"`)
	}
	b.WriteString(">")
	s.Walk(svgWriter{b: &b, s: s})
	b.WriteString("</svg>")
	return b.String()
}
