// Package workbook exports a mode payload as an XLSX workbook with one sheet
// per chart series.
package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/GoPolymarket/forecastviz/internal/dashboard"
	"github.com/GoPolymarket/forecastviz/internal/payload"
)

// Sheet names, in workbook order.
const (
	SheetSummary     = "Summary"
	SheetBands       = "Bands"
	SheetFan         = "Fan"
	SheetCalibration = "Calibration"
	SheetTailRisk    = "TailRisk"
	SheetRegime      = "Regime"
)

// Sheets lists every sheet in workbook order.
var Sheets = []string{SheetSummary, SheetBands, SheetFan, SheetCalibration, SheetTailRisk, SheetRegime}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) append(values ...interface{}) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return fmt.Errorf("workbook: %s row %d: %w", w.sheet, w.row, err)
	}
	return nil
}

func step(v payload.Visuals, i int) int {
	if i < len(v.Horizon) {
		return v.Horizon[i]
	}
	return i + 1
}

func at(s []float64, i int) interface{} {
	if i < len(s) {
		return s[i]
	}
	return nil
}

// Build assembles the workbook for p.
func Build(p payload.Payload) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("workbook: rename default sheet: %w", err)
	}
	for _, name := range Sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("workbook: new sheet %s: %w", name, err)
		}
	}

	for _, fill := range []func(*excelize.File, payload.Payload) error{
		writeSummary, writeBands, writeFan, writeCalibration, writeTailRisk, writeRegime,
	} {
		if err := fill(f, p); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook for p and writes it to w.
func Write(w io.Writer, p payload.Payload) error {
	f, err := Build(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("workbook: write: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, p payload.Payload) error {
	w := &sheetWriter{f: f, sheet: SheetSummary}
	rows := [][]interface{}{
		{"Mode", p.Mode},
		{"Title", p.Title},
		{"Horizon", p.Horizon},
		{"Context Length", p.ContextLength},
	}
	for _, k := range dashboard.KPIs(p) {
		rows = append(rows, []interface{}{k.Label, k.Value})
	}
	m := p.Metrics
	rows = append(rows,
		[]interface{}{"MAE", m.MAE},
		[]interface{}{"RMSE", m.RMSE},
		[]interface{}{"NLL", m.NLL},
	)
	for _, r := range rows {
		if err := w.append(r...); err != nil {
			return err
		}
	}
	return nil
}

func writeBands(f *excelize.File, p payload.Payload) error {
	w := &sheetWriter{f: f, sheet: SheetBands}
	b := p.Visuals.Bands
	if err := w.append("step", "p10", "p50", "p90"); err != nil {
		return err
	}
	for i := range b.P50 {
		if err := w.append(step(p.Visuals, i), at(b.P10, i), b.P50[i], at(b.P90, i)); err != nil {
			return err
		}
	}
	return nil
}

func writeFan(f *excelize.File, p payload.Payload) error {
	w := &sheetWriter{f: f, sheet: SheetFan}
	fan := p.Visuals.Fan
	if err := w.append("step", "p05", "p25", "p50", "p75", "p95"); err != nil {
		return err
	}
	for i := range fan.P50 {
		if err := w.append(step(p.Visuals, i), at(fan.P05, i), at(fan.P25, i), fan.P50[i], at(fan.P75, i), at(fan.P95, i)); err != nil {
			return err
		}
	}
	return nil
}

func writeCalibration(f *excelize.File, p payload.Payload) error {
	w := &sheetWriter{f: f, sheet: SheetCalibration}
	if err := w.append("expected", "observed", "count"); err != nil {
		return err
	}
	for _, bin := range p.Visuals.CalibrationBins {
		if err := w.append(bin.Expected, bin.Observed, bin.Count); err != nil {
			return err
		}
	}
	return nil
}

func writeTailRisk(f *excelize.File, p payload.Payload) error {
	w := &sheetWriter{f: f, sheet: SheetTailRisk}
	for _, row := range p.Visuals.TailRiskHeatmap {
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := w.append(values...); err != nil {
			return err
		}
	}
	return nil
}

func writeRegime(f *excelize.File, p payload.Payload) error {
	w := &sheetWriter{f: f, sheet: SheetRegime}
	if err := w.append("marker", "step"); err != nil {
		return err
	}
	for _, idx := range p.Visuals.RegimeMarkers {
		if err := w.append(idx, step(p.Visuals, idx)); err != nil {
			return err
		}
	}
	return nil
}
