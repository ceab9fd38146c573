package charts

import (
	"fmt"

	"github.com/GoPolymarket/forecastviz/internal/geometry"
	"github.com/GoPolymarket/forecastviz/internal/payload"
	"github.com/GoPolymarket/forecastviz/internal/surface"
)

const (
	minCellOpacity = 0.08
	maxCellOpacity = 0.95
)

// CellOpacity maps a tail-risk intensity to a cell opacity.
func CellOpacity(v float64) float64 {
	if v < minCellOpacity {
		return minCellOpacity
	}
	if v > maxCellOpacity {
		return maxCellOpacity
	}
	return v
}

// TailRiskHeatmap lays the intensity matrix out as a grid of colored cells.
// The column count is taken from the first row; longer rows are truncated.
func TailRiskHeatmap(matrix [][]float64, frame Frame) Panel {
	rows := len(matrix)
	cols := 0
	if rows > 0 {
		cols = len(matrix[0])
	}
	s := newSurface(frame, "Tail risk heatmap")
	s.Rows, s.Cols = rows, cols
	for r, row := range matrix {
		for c, v := range row {
			if c >= cols {
				break
			}
			s.Add(surface.Cell{
				Row:   r,
				Col:   c,
				Fill:  surface.RGBA(accent.R, accent.G, accent.B, CellOpacity(v)),
				Label: fmt.Sprintf("risk-%d-%d", r, c),
			})
		}
	}
	return Panel{
		Kind:        KindTailRisk,
		Title:       "Tail Risk Heatmap",
		Description: "Concentration of low-probability high-impact outcomes.",
		Surface:     s,
		Summary:     []string{fmt.Sprintf("Grid: %d x %d", rows, cols)},
	}
}

// RegimeMarkers draws the median series with a dashed vertical line at each
// detected change point.
func RegimeMarkers(p50 []float64, markers []int, frame Frame) Panel {
	r := geometry.RangeOf(p50)
	s := newSurface(frame, "Regime markers")
	s.Add(surface.Path{
		Geometry:    geometry.Line(p50, frame.w(), frame.h(), r.Min, r.Max),
		Stroke:      inkLine,
		StrokeWidth: 2,
	})
	for _, idx := range markers {
		x := geometry.MapIndexToX(idx, len(p50), frame.w())
		s.Add(surface.Line{
			X1: x, Y1: 0, X2: x, Y2: frame.h(),
			Stroke:      accent,
			StrokeWidth: 2,
			Dash:        []float64{5, 4},
		})
	}
	return Panel{
		Kind:        KindRegime,
		Title:       "Regime Shift Markers",
		Description: "Detected change points and transition confidence.",
		Surface:     s,
	}
}

// CalibrationPlot draws observed against expected coverage on a fixed [0,1]
// scale, with the perfect-calibration diagonal for reference.
func CalibrationPlot(bins []payload.CalibrationBin, frame Frame) Panel {
	observed := make([]float64, len(bins))
	for i, b := range bins {
		observed[i] = b.Observed
	}
	s := newSurface(frame, "Calibration plot")
	s.Add(
		surface.Line{
			X1: 0, Y1: frame.h(), X2: frame.w(), Y2: 0,
			Stroke: diagonalLine,
			Dash:   []float64{6, 6},
		},
		surface.Path{
			Geometry:    geometry.Line(observed, frame.w(), frame.h(), 0, 1),
			Stroke:      cyanLine,
			StrokeWidth: 2.3,
		},
	)
	for _, b := range bins {
		s.Add(surface.Circle{
			CX:   geometry.MapValueToX(b.Expected, 0, 1, frame.w()),
			CY:   geometry.MapValueToY(b.Observed, 0, 1, frame.h()),
			R:    4,
			Fill: accent,
		})
	}
	return Panel{
		Kind:        KindCalibration,
		Title:       "Calibration Plot",
		Description: "Observed vs expected coverage reliability bins.",
		Surface:     s,
	}
}
