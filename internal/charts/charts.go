// Package charts turns payload series into chart panels. Components only pick
// a shared value range, build geometry and attach fixed labels; every
// statistic arrives pre-computed.
package charts

import (
	"github.com/GoPolymarket/forecastviz/internal/surface"
)

// Kind identifies a chart component.
type Kind string

const (
	KindForecastBands Kind = "forecast-bands"
	KindFan           Kind = "fan"
	KindTailRisk      Kind = "tail-risk"
	KindRegime        Kind = "regime"
	KindCalibration   Kind = "calibration"
)

// Kinds lists every component in dashboard order.
var Kinds = []Kind{KindForecastBands, KindFan, KindTailRisk, KindRegime, KindCalibration}

// ParseKind validates a chart kind taken from user input.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Frame is the pixel size of a plotting surface.
type Frame struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

func (f Frame) w() float64 { return float64(f.Width) }
func (f Frame) h() float64 { return float64(f.Height) }

// Frames holds the frame size of each chart family.
type Frames struct {
	Wide        Frame `yaml:"wide" json:"wide"`
	Calibration Frame `yaml:"calibration" json:"calibration"`
}

// DefaultFrames returns the standard dashboard frame sizes.
func DefaultFrames() Frames {
	return Frames{
		Wide:        Frame{Width: 760, Height: 170},
		Calibration: Frame{Width: 320, Height: 220},
	}
}

// For returns the frame used by kind.
func (f Frames) For(kind Kind) Frame {
	if kind == KindCalibration {
		return f.Calibration
	}
	return f.Wide
}

// Panel is one rendered chart plus its descriptive text.
type Panel struct {
	Kind        Kind
	Title       string
	Description string
	Surface     surface.Surface
	Summary     []string
}

var (
	tealBand     = surface.RGBA(0, 149, 168, 0.28)
	tealLine     = surface.RGB(10, 95, 107)
	orangeOuter  = surface.RGBA(230, 106, 31, 0.2)
	orangeInner  = surface.RGBA(230, 106, 31, 0.35)
	rustLine     = surface.RGB(122, 52, 9)
	inkLine      = surface.RGB(15, 23, 32)
	accent       = surface.RGB(230, 106, 31)
	cyanLine     = surface.RGB(0, 149, 168)
	diagonalLine = surface.RGBA(15, 23, 32, 0.25)
)

func newSurface(frame Frame, label string) surface.Surface {
	return surface.Surface{Width: frame.Width, Height: frame.Height, Label: label}
}
