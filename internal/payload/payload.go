// Package payload defines the chart payload produced by the forecasting
// engine and the artifact store that serves it.
package payload

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Metrics are the scalar evaluation metrics of a forecast run.
type Metrics struct {
	MAE      float64 `json:"mae"`
	RMSE     float64 `json:"rmse"`
	NLL      float64 `json:"nll"`
	CRPS     float64 `json:"crps"`
	Coverage float64 `json:"coverage"`
}

// Bands is the P10/P50/P90 percentile envelope.
type Bands struct {
	P10 []float64 `json:"p10"`
	P50 []float64 `json:"p50"`
	P90 []float64 `json:"p90"`
}

// Fan is the five-percentile scenario spread.
type Fan struct {
	P05 []float64 `json:"p05"`
	P25 []float64 `json:"p25"`
	P50 []float64 `json:"p50"`
	P75 []float64 `json:"p75"`
	P95 []float64 `json:"p95"`
}

// CalibrationBin compares expected and observed outcome frequency.
type CalibrationBin struct {
	Expected float64 `json:"expected"`
	Observed float64 `json:"observed"`
	Count    int     `json:"count"`
}

// Visuals holds every series the dashboard charts draw.
type Visuals struct {
	Horizon         []int            `json:"horizon"`
	Bands           Bands            `json:"bands"`
	Fan             Fan              `json:"fan"`
	TailRiskHeatmap [][]float64      `json:"tail_risk_heatmap"`
	RegimeMarkers   []int            `json:"regime_markers"`
	CalibrationBins []CalibrationBin `json:"calibration_bins"`
}

// Payload is one demo mode's forecast output. It is read-only once decoded.
type Payload struct {
	Mode             string  `json:"mode"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Engine           string  `json:"engine,omitempty"`
	Dataset          string  `json:"dataset"`
	Model            string  `json:"model"`
	Horizon          int     `json:"horizon"`
	ContextLength    int     `json:"context_length"`
	TailRiskScore    float64 `json:"tail_risk_score"`
	RegimeShiftScore float64 `json:"regime_shift_score"`
	Metrics          Metrics `json:"metrics"`
	Visuals          Visuals `json:"visuals"`
	ArtifactPath     string  `json:"artifact_path,omitempty"`
}

// Decode reads and validates one payload.
func Decode(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("payload: decode: %w", err)
	}
	if err := Validate(&p); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// LoadFile decodes the payload stored at path and returns it together with
// the hex SHA-256 digest of the file contents.
func LoadFile(path string) (Payload, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, "", fmt.Errorf("payload: read %s: %w", path, err)
	}
	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Payload{}, "", err
	}
	sum := sha256.Sum256(data)
	return p, hex.EncodeToString(sum[:]), nil
}
