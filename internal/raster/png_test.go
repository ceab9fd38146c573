package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/GoPolymarket/forecastviz/internal/charts"
	"github.com/GoPolymarket/forecastviz/internal/surface"
)

func TestPNGSize(t *testing.T) {
	p := charts.ForecastBands(
		[]float64{1, 2, 3, 2},
		[]float64{2, 3, 4, 3},
		[]float64{3, 4, 5, 4},
		charts.DefaultFrames().Wide,
	)
	b, err := PNG(p.Surface)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Dx(); got != 760 {
		t.Fatalf("expected width 760, got %d", got)
	}
	if got := img.Bounds().Dy(); got != 170 {
		t.Fatalf("expected height 170, got %d", got)
	}
}

func TestPNGPaintsHeatmapCells(t *testing.T) {
	p := charts.TailRiskHeatmap([][]float64{{0.9, 0.9}, {0.9, 0.9}}, charts.Frame{Width: 40, Height: 40})
	b, err := PNG(p.Surface)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, bl, _ := img.At(10, 10).RGBA()
	if r == 0xffff && g == 0xffff && bl == 0xffff {
		t.Fatal("expected cell pixel to differ from the white background")
	}
}

func TestWriteRejectsEmptySurface(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, surface.Surface{}); err == nil {
		t.Fatal("expected error for zero-size surface")
	}
}

func TestToDrawingAlpha(t *testing.T) {
	c := toDrawing(surface.RGBA(230, 106, 31, 0.5))
	if c.R != 230 || c.G != 106 || c.B != 31 || c.A != 128 {
		t.Fatalf("unexpected color %+v", c)
	}
	if toDrawing(surface.RGB(1, 2, 3)).A != 255 {
		t.Fatal("expected opaque alpha 255")
	}
}
