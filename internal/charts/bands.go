package charts

import (
	"github.com/GoPolymarket/forecastviz/internal/geometry"
	"github.com/GoPolymarket/forecastviz/internal/surface"
)

// ForecastBands draws the P10 to P90 envelope with the P50 median on top.
func ForecastBands(p10, p50, p90 []float64, frame Frame) Panel {
	r := geometry.RangeOf(p10, p50, p90)
	s := newSurface(frame, "Forecast bands")
	s.Add(
		surface.Path{
			Geometry: geometry.Band(p10, p90, frame.w(), frame.h(), r.Min, r.Max),
			Fill:     tealBand,
		},
		surface.Path{
			Geometry:    geometry.Line(p50, frame.w(), frame.h(), r.Min, r.Max),
			Stroke:      tealLine,
			StrokeWidth: 2.5,
		},
	)
	return Panel{
		Kind:        KindForecastBands,
		Title:       "Forecast Bands",
		Description: "P10 / P50 / P90 distribution envelope from PRE predictions.",
		Surface:     s,
	}
}

// FanChart draws the outer (P05 to P95) and inner (P25 to P75) scenario ribbons
// and the median line, all on one scale.
func FanChart(p05, p25, p50, p75, p95 []float64, frame Frame) Panel {
	r := geometry.RangeOf(p05, p25, p50, p75, p95)
	s := newSurface(frame, "Fan chart")
	s.Add(
		surface.Path{
			Geometry: geometry.Band(p05, p95, frame.w(), frame.h(), r.Min, r.Max),
			Fill:     orangeOuter,
		},
		surface.Path{
			Geometry: geometry.Band(p25, p75, frame.w(), frame.h(), r.Min, r.Max),
			Fill:     orangeInner,
		},
		surface.Path{
			Geometry:    geometry.Line(p50, frame.w(), frame.h(), r.Min, r.Max),
			Stroke:      rustLine,
			StrokeWidth: 2.2,
		},
	)
	return Panel{
		Kind:        KindFan,
		Title:       "Monte Carlo Fan Chart",
		Description: "Scenario spread for forward uncertainty rollouts.",
		Surface:     s,
	}
}
