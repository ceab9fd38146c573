package geometry

// Epsilon is the smallest value span used when mapping values to pixels.
const Epsilon = 1e-6

// MapIndexToX maps a series index onto a frame of the given width.
// Single-point series collapse to x=0.
func MapIndexToX(index, n int, width float64) float64 {
	den := n - 1
	if den < 1 {
		den = 1
	}
	return float64(index) / float64(den) * width
}

// MapValueToY maps value within [min,max] onto a frame of the given height,
// inverting the axis so larger values render higher. Values outside the range
// are extrapolated, not clamped.
func MapValueToY(value, min, max, height float64) float64 {
	return height - (value-min)/span(min, max)*height
}

// MapValueToX maps value within [min,max] onto a frame of the given width.
func MapValueToX(value, min, max, width float64) float64 {
	return (value - min) / span(min, max) * width
}

func span(min, max float64) float64 {
	s := max - min
	if s < Epsilon {
		return Epsilon
	}
	return s
}

// Range is the shared vertical scale of a set of series.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RangeOf returns the min/max across all values of all series.
// It returns the zero Range when every series is empty.
func RangeOf(series ...[]float64) Range {
	var r Range
	seen := false
	for _, s := range series {
		for _, v := range s {
			if !seen {
				r = Range{Min: v, Max: v}
				seen = true
				continue
			}
			if v < r.Min {
				r.Min = v
			}
			if v > r.Max {
				r.Max = v
			}
		}
	}
	return r
}

// Span returns Max-Min floored to Epsilon.
func (r Range) Span() float64 {
	return span(r.Min, r.Max)
}
