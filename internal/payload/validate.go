package payload

import (
	"slices"

	z "github.com/Oudwins/zog"
)

func seriesSchema() *z.SliceSchema {
	return z.Slice(z.Float64()).Required().Min(1)
}

var bandsShape = z.Shape{
	"P10": seriesSchema(),
	"P50": seriesSchema(),
	"P90": seriesSchema(),
}

var fanShape = z.Shape{
	"P05": seriesSchema(),
	"P25": seriesSchema(),
	"P50": seriesSchema(),
	"P75": seriesSchema(),
	"P95": seriesSchema(),
}

var binShape = z.Shape{
	"Expected": z.Float64().GTE(0).LTE(1),
	"Observed": z.Float64().GTE(0).LTE(1),
	"Count":    z.Int().GTE(0),
}

var payloadSchema = z.Struct(z.Shape{
	"Mode":    z.String().Required(),
	"Title":   z.String().Required(),
	"Dataset": z.String().Required(),
	"Model":   z.String().Required(),
	"Metrics": z.Struct(z.Shape{
		"Coverage": z.Float64().GTE(0).LTE(1),
		"CRPS":     z.Float64().GTE(0),
	}),
	"Visuals": z.Struct(z.Shape{
		"Bands":           z.Struct(bandsShape),
		"Fan":             z.Struct(fanShape),
		"CalibrationBins": z.Slice(z.Struct(binShape)),
	}),
}).
	TestFunc(bandLengthsMatch, z.Message("bands p10/p50/p90 must share one length")).
	TestFunc(fanLengthsMatch, z.Message("fan p05..p95 must share one length")).
	TestFunc(markersInRange, z.Message("regime markers must index into bands p50"))

func bandLengthsMatch(dataPtr any, _ z.Ctx) bool {
	p, ok := dataPtr.(*Payload)
	if !ok {
		return true
	}
	b := p.Visuals.Bands
	return sameLength(b.P10, b.P50, b.P90)
}

func fanLengthsMatch(dataPtr any, _ z.Ctx) bool {
	p, ok := dataPtr.(*Payload)
	if !ok {
		return true
	}
	f := p.Visuals.Fan
	return sameLength(f.P05, f.P25, f.P50, f.P75, f.P95)
}

func markersInRange(dataPtr any, _ z.Ctx) bool {
	p, ok := dataPtr.(*Payload)
	if !ok {
		return true
	}
	n := len(p.Visuals.Bands.P50)
	for _, idx := range p.Visuals.RegimeMarkers {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

func sameLength(series ...[]float64) bool {
	for _, s := range series[1:] {
		if len(s) != len(series[0]) {
			return false
		}
	}
	return true
}

// Validate checks the structural input contract at the ingestion boundary.
// Statistical plausibility is the producer's responsibility.
func Validate(p *Payload) error {
	errs := payloadSchema.Validate(p)
	if len(errs) == 0 {
		return nil
	}
	issues := make([]string, 0, len(errs))
	for key, list := range errs {
		if key == firstIssueKey {
			continue
		}
		path := key
		if key == rootIssueKey {
			path = "payload"
		}
		for _, issue := range list {
			issues = append(issues, path+": "+issue.Message)
		}
	}
	slices.Sort(issues)
	return &ValidationError{Mode: p.Mode, Issues: slices.Compact(issues)}
}

// zog keys struct-level issues under $root and repeats the first issue under $first.
const (
	rootIssueKey  = "$root"
	firstIssueKey = "$first"
)
