// Package dashboard composes a mode payload into headline KPIs and chart
// panels, and renders the result as an HTML page, a lab index or a markdown
// digest.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/GoPolymarket/forecastviz/internal/charts"
	"github.com/GoPolymarket/forecastviz/internal/payload"
	"github.com/GoPolymarket/forecastviz/internal/surface"
)

// KPI is one labelled headline value.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dashboard is a composed mode page.
type Dashboard struct {
	Mode        string
	Title       string
	Description string
	KPIs        []KPI
	Panels      []charts.Panel
}

// Compose builds the dashboard for one payload. Missing series yield empty
// panels rather than errors.
func Compose(p payload.Payload, frames charts.Frames) Dashboard {
	v := p.Visuals
	return Dashboard{
		Mode:        p.Mode,
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		KPIs:        KPIs(p),
		Panels: []charts.Panel{
			charts.ForecastBands(v.Bands.P10, v.Bands.P50, v.Bands.P90, frames.Wide),
			charts.FanChart(v.Fan.P05, v.Fan.P25, v.Fan.P50, v.Fan.P75, v.Fan.P95, frames.Wide),
			charts.TailRiskHeatmap(v.TailRiskHeatmap, frames.Wide),
			charts.RegimeMarkers(v.Bands.P50, v.RegimeMarkers, frames.Wide),
			charts.CalibrationPlot(v.CalibrationBins, frames.Calibration),
		},
	}
}

// KPIs returns the headline values of a payload.
func KPIs(p payload.Payload) []KPI {
	return []KPI{
		{Label: "Dataset", Value: p.Dataset},
		{Label: "Model", Value: p.Model},
		{Label: "Tail Risk Score", Value: fmt.Sprintf("%.4f", p.TailRiskScore)},
		{Label: "Regime Shift Score", Value: fmt.Sprintf("%.4f", p.RegimeShiftScore)},
		{Label: "Coverage", Value: fmt.Sprintf("%.4f", p.Metrics.Coverage)},
		{Label: "CRPS", Value: fmt.Sprintf("%.4f", p.Metrics.CRPS)},
	}
}

// Panel returns the panel of the given kind.
func (d Dashboard) Panel(kind charts.Kind) (charts.Panel, bool) {
	for _, p := range d.Panels {
		if p.Kind == kind {
			return p, true
		}
	}
	return charts.Panel{}, false
}

// PanelView is the JSON description of a panel.
type PanelView struct {
	Kind        charts.Kind     `json:"kind"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Label       string          `json:"aria_label"`
	Summary     []string        `json:"summary,omitempty"`
	Shapes      []surface.Shape `json:"shapes"`
}

// View is the JSON description of a dashboard.
type View struct {
	Mode        string      `json:"mode"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	KPIs        []KPI       `json:"kpis"`
	Panels      []PanelView `json:"panels"`
}

// View flattens the dashboard for JSON encoding.
func (d Dashboard) View() View {
	panels := make([]PanelView, 0, len(d.Panels))
	for _, p := range d.Panels {
		panels = append(panels, PanelView{
			Kind:        p.Kind,
			Title:       p.Title,
			Description: p.Description,
			Width:       p.Surface.Width,
			Height:      p.Surface.Height,
			Label:       p.Surface.Label,
			Summary:     p.Summary,
			Shapes:      p.Surface.Shapes(),
		})
	}
	return View{
		Mode:        d.Mode,
		Title:       d.Title,
		Description: d.Description,
		KPIs:        d.KPIs,
		Panels:      panels,
	}
}
