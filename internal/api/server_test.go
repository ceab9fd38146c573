package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/GoPolymarket/forecastviz/internal/charts"
	"github.com/GoPolymarket/forecastviz/internal/payload"
	"github.com/GoPolymarket/forecastviz/internal/rendercache"
)

type mockSource struct {
	payloads map[string]payload.Payload
	failures map[string]error
	lastSync time.Time
	loads    int
}

func (m *mockSource) Load(mode string) (payload.Payload, string, error) {
	m.loads++
	if _, err := payload.LookupMode(mode); err != nil {
		return payload.Payload{}, "", err
	}
	if err, ok := m.failures[mode]; ok {
		return payload.Payload{}, "", err
	}
	p, ok := m.payloads[mode]
	if !ok {
		return payload.Payload{}, "", fmt.Errorf("%w for mode %q", payload.ErrNotFound, mode)
	}
	return p, "digest-" + mode, nil
}

func (m *mockSource) Modes() []string {
	var out []string
	for _, slug := range payload.ModeSlugs() {
		if _, ok := m.payloads[slug]; ok {
			out = append(out, slug)
		}
	}
	return out
}

func (m *mockSource) Failures() map[string]error { return m.failures }
func (m *mockSource) LastSync() time.Time        { return m.lastSync }

func newSource(t *testing.T) *mockSource {
	t.Helper()
	src := &mockSource{
		payloads: make(map[string]payload.Payload),
		failures: map[string]error{
			"demand": &payload.ValidationError{Mode: "demand", Issues: []string{"title is required"}},
		},
		lastSync: time.Now(),
	}
	for _, mode := range []string{"telemetry", "finance"} {
		p, _, err := payload.LoadFile(payload.ArtifactPath("../../testdata/artifacts", mode))
		if err != nil {
			t.Fatalf("load fixture %s: %v", mode, err)
		}
		src.payloads[mode] = p
	}
	return src
}

func newTestServer(t *testing.T, src *mockSource, cache *rendercache.Cache) *Server {
	t.Helper()
	return NewServer(":0", src, charts.DefaultFrames(), cache, zerolog.Nop())
}

func serve(s *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	w := serve(s, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["ok"] != true {
		t.Fatalf("expected ok=true, got %v", resp["ok"])
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestHandleReady(t *testing.T) {
	src := newSource(t)
	s := newTestServer(t, src, nil)

	w := serve(s, "/api/ready")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	rejected := resp["rejected"].(map[string]interface{})
	if _, ok := rejected["demand"]; !ok {
		t.Fatalf("expected demand in rejected, got %v", rejected)
	}

	src.lastSync = time.Time{}
	w = serve(s, "/api/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before first sync, got %d", w.Code)
	}
}

func TestHandleModes(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	w := serve(s, "/api/modes")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Modes []struct {
			Mode      string `json:"mode"`
			Dataset   string `json:"dataset"`
			Available bool   `json:"available"`
		} `json:"modes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Modes) != 5 {
		t.Fatalf("expected 5 modes, got %d", len(resp.Modes))
	}
	for _, m := range resp.Modes {
		want := m.Mode == "telemetry" || m.Mode == "finance"
		if m.Available != want {
			t.Errorf("mode %s: expected available=%v", m.Mode, want)
		}
	}
}

func TestHandleDashboard(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	w := serve(s, "/api/modes/telemetry")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Title string `json:"title"`
		KPIs  []struct {
			Label string `json:"label"`
			Value string `json:"value"`
		} `json:"kpis"`
		Panels []struct {
			Kind   string `json:"kind"`
			Width  int    `json:"width"`
			Shapes []struct {
				Type string `json:"type"`
				D    string `json:"d"`
			} `json:"shapes"`
		} `json:"panels"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "Operational Risk Mode" {
		t.Fatalf("unexpected title %q", resp.Title)
	}
	if len(resp.KPIs) != 6 || resp.KPIs[2].Value != "0.4363" {
		t.Fatalf("unexpected kpis %+v", resp.KPIs)
	}
	if len(resp.Panels) != 5 || resp.Panels[0].Kind != "forecast-bands" {
		t.Fatalf("unexpected panels %+v", resp.Panels)
	}
	if d := resp.Panels[0].Shapes[0].D; !strings.HasSuffix(d, " Z") {
		t.Fatalf("expected closed band path, got %q", d)
	}
}

func TestHandleDashboardErrors(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	cases := []struct {
		target string
		status int
	}{
		{"/api/modes/crypto", http.StatusNotFound},
		{"/api/modes/project-risk", http.StatusNotFound},
		{"/api/modes/demand", http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		w := serve(s, c.target)
		if w.Code != c.status {
			t.Errorf("%s: expected %d, got %d", c.target, c.status, w.Code)
			continue
		}
		var resp map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Errorf("%s: decode: %v", c.target, err)
			continue
		}
		if resp["error"] == nil || resp["error"] == "" {
			t.Errorf("%s: expected error message", c.target)
		}
	}
}

func TestHandleChartSVG(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	w := serve(s, "/api/modes/finance/charts/tail-risk.svg")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "<svg") || !strings.Contains(body, `aria-label="risk-3-5"`) {
		t.Fatalf("unexpected svg %q", body)
	}
}

func TestHandleChartPNG(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	w := serve(s, "/api/modes/telemetry/charts/calibration.png")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 220 {
		t.Fatalf("unexpected png size %v", img.Bounds())
	}
}

func TestHandleChartUnknown(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	for _, target := range []string{
		"/api/modes/telemetry/charts/pie.svg",
		"/api/modes/telemetry/charts/fan.gif",
		"/api/modes/telemetry/charts/fan",
	} {
		if w := serve(s, target); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", target, w.Code)
		}
	}
}

func TestHandleChartUsesCache(t *testing.T) {
	src := newSource(t)
	cache := rendercache.New(time.Minute, time.Minute)
	s := newTestServer(t, src, cache)

	first := serve(s, "/api/modes/telemetry/charts/fan.svg")
	second := serve(s, "/api/modes/telemetry/charts/fan.svg")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200s, got %d/%d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatal("expected identical cached output")
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cache entry, got %d", cache.Len())
	}
	if _, ok := cache.Get(rendercache.Key("telemetry", "fan", ".svg", "digest-telemetry")); !ok {
		t.Fatal("expected entry keyed by mode, kind and digest")
	}
}

func TestHandleSummaryMarkdown(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	w := serve(s, "/api/modes/telemetry/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "# Operational Risk Mode") {
		t.Fatalf("unexpected markdown %q", body)
	}
	if !strings.Contains(body, "- CRPS: `0.298765`") {
		t.Fatalf("expected crps metric, got %q", body)
	}
}

func TestHandleSummaryCSV(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	w := serve(s, "/api/modes/finance/summary?format=csv")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected csv content type, got %q", ct)
	}
	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one record, got %d rows", len(rows))
	}
	if rows[0][0] != "mode" || rows[1][0] != "finance" {
		t.Fatalf("unexpected csv %v", rows)
	}
	if rows[1][12] != "0.862500" {
		t.Fatalf("expected coverage 0.862500, got %q", rows[1][12])
	}
}

func TestHandleSummaryBadFormat(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	if w := serve(s, "/api/modes/finance/summary?format=pdf"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleWorkbook(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)
	w := serve(s, "/api/modes/finance/export.xlsx")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "forecastviz-finance.xlsx") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Fatal("expected zip container")
	}
}

func TestHandleLab(t *testing.T) {
	s := newTestServer(t, newSource(t), nil)

	w := serve(s, "/lab")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "PRE Multi-Mode Lab") {
		t.Fatalf("unexpected lab page %d", w.Code)
	}

	w = serve(s, "/lab/modes/telemetry")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.Count(w.Body.String(), `<section class="panel"`); got != 5 {
		t.Fatalf("expected 5 panels, got %d", got)
	}

	w = serve(s, "/")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/lab" {
		t.Fatalf("expected redirect to /lab, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{payload.ErrUnknownMode, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", payload.ErrNotFound), http.StatusNotFound},
		{&payload.ValidationError{Mode: "x"}, http.StatusUnprocessableEntity},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := statusFor(c.err); got != c.want {
			t.Errorf("statusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
