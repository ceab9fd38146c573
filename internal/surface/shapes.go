package surface

// Shape is the JSON view of one surface element.
type Shape struct {
	Type        string    `json:"type"`
	D           string    `json:"d,omitempty"`
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"stroke_width,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
	X1          float64   `json:"x1"`
	Y1          float64   `json:"y1"`
	X2          float64   `json:"x2"`
	Y2          float64   `json:"y2"`
	CX          float64   `json:"cx"`
	CY          float64   `json:"cy"`
	R           float64   `json:"r,omitempty"`
	Row         int       `json:"row"`
	Col         int       `json:"col"`
	Label       string    `json:"label,omitempty"`
}

type shapeCollector struct {
	shapes []Shape
}

func (c *shapeCollector) VisitPath(p Path) {
	c.shapes = append(c.shapes, Shape{
		Type:        "path",
		D:           p.D(),
		Fill:        p.Fill.CSS(),
		Stroke:      p.Stroke.CSS(),
		StrokeWidth: p.StrokeWidth,
	})
}

func (c *shapeCollector) VisitLine(l Line) {
	c.shapes = append(c.shapes, Shape{
		Type:        "line",
		X1:          l.X1,
		Y1:          l.Y1,
		X2:          l.X2,
		Y2:          l.Y2,
		Stroke:      l.Stroke.CSS(),
		StrokeWidth: l.StrokeWidth,
		Dash:        l.Dash,
	})
}

func (c *shapeCollector) VisitCircle(ci Circle) {
	c.shapes = append(c.shapes, Shape{Type: "circle", CX: ci.CX, CY: ci.CY, R: ci.R, Fill: ci.Fill.CSS()})
}

func (c *shapeCollector) VisitCell(ce Cell) {
	c.shapes = append(c.shapes, Shape{Type: "cell", Row: ce.Row, Col: ce.Col, Fill: ce.Fill.CSS(), Label: ce.Label})
}

// Shapes flattens the surface into its JSON element list.
func (s Surface) Shapes() []Shape {
	c := &shapeCollector{shapes: make([]Shape, 0, len(s.Elements))}
	s.Walk(c)
	return c.shapes
}
