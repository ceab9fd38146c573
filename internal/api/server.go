package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/GoPolymarket/forecastviz/internal/charts"
	"github.com/GoPolymarket/forecastviz/internal/dashboard"
	"github.com/GoPolymarket/forecastviz/internal/payload"
	"github.com/GoPolymarket/forecastviz/internal/raster"
	"github.com/GoPolymarket/forecastviz/internal/rendercache"
	"github.com/GoPolymarket/forecastviz/internal/surface"
	"github.com/GoPolymarket/forecastviz/internal/workbook"
)

const (
	contentTypeSVG  = "image/svg+xml"
	contentTypePNG  = "image/png"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeMD   = "text/markdown; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
)

// PayloadSource exposes the mode payloads for the API layer.
type PayloadSource interface {
	Load(mode string) (payload.Payload, string, error)
	Modes() []string
	Failures() map[string]error
	LastSync() time.Time
}

// Server is a lightweight HTTP API serving mode dashboards and chart exports.
type Server struct {
	httpServer *http.Server
	source     PayloadSource
	frames     charts.Frames
	cache      *rendercache.Cache
	log        zerolog.Logger
	startedAt  time.Time
}

// NewServer creates a new API server bound to addr. cache may be nil.
func NewServer(addr string, source PayloadSource, frames charts.Frames, cache *rendercache.Cache, logger zerolog.Logger) *Server {
	s := &Server{
		source:    source,
		frames:    frames,
		cache:     cache,
		log:       logger.With().Str("component", "api").Logger(),
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/ready", s.handleReady)
	mux.HandleFunc("GET /api/modes", s.handleModes)
	mux.HandleFunc("GET /api/modes/{mode}", s.handleDashboard)
	mux.HandleFunc("GET /api/modes/{mode}/charts/{file}", s.handleChart)
	mux.HandleFunc("GET /api/modes/{mode}/summary", s.handleSummary)
	mux.HandleFunc("GET /api/modes/{mode}/export.xlsx", s.handleWorkbook)
	mux.HandleFunc("GET /lab", s.handleLab)
	mux.HandleFunc("GET /lab/modes/{mode}", s.handleLabMode)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/lab", http.StatusFound)
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.accessLog(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the root handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving HTTP requests.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("api server listening")
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("api server")
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, payload.ErrUnknownMode), errors.Is(err, payload.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, payload.ErrInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeBytes(w http.ResponseWriter, contentType string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}

// load resolves the {mode} path value and writes the error response when the
// payload cannot be served.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (payload.Payload, string, bool) {
	mode := r.PathValue("mode")
	p, digest, err := s.source.Load(mode)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.log.Error().Err(err).Str("mode", mode).Msg("load payload")
		}
		s.writeError(w, status, err)
		return payload.Payload{}, "", false
	}
	return p, digest, true
}

func (s *Server) render(key string, fn func() ([]byte, error)) ([]byte, error) {
	if s.cache == nil {
		return fn()
	}
	return s.cache.GetOrRender(key, fn)
}

// GET /api/health — liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"ok":       true,
		"uptime_s": time.Since(s.startedAt).Seconds(),
	})
}

// GET /api/ready — readiness probe. Ready once the store has synced.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	lastSync := s.source.LastSync()
	ready := !lastSync.IsZero()
	rejected := make(map[string]string)
	for mode, err := range s.source.Failures() {
		rejected[mode] = err.Error()
	}
	resp := map[string]interface{}{
		"ready":    ready,
		"modes":    s.source.Modes(),
		"rejected": rejected,
		"uptime_s": time.Since(s.startedAt).Seconds(),
	}
	if !ready {
		resp["reason"] = "payloads_not_synced"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	resp["last_sync"] = lastSync
	s.writeJSON(w, resp)
}

// GET /api/modes — catalog cards with artifact availability.
func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	available := make(map[string]bool)
	for _, m := range s.source.Modes() {
		available[m] = true
	}
	type modeEntry struct {
		payload.ModeCard
		Available bool `json:"available"`
	}
	cards := payload.ModeCards()
	entries := make([]modeEntry, 0, len(cards))
	for _, c := range cards {
		entries = append(entries, modeEntry{ModeCard: c, Available: available[c.Mode]})
	}
	s.writeJSON(w, map[string]interface{}{"modes": entries})
}

// GET /api/modes/{mode} — dashboard KPIs and panel shapes.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, dashboard.Compose(p, s.frames).View())
}

// GET /api/modes/{mode}/charts/{kind}.svg|.png — one chart panel.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	kind, ok := charts.ParseKind(strings.TrimSuffix(file, ext))
	if !ok || (ext != ".svg" && ext != ".png") {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("unknown chart %q", file))
		return
	}
	p, digest, ok := s.load(w, r)
	if !ok {
		return
	}

	b, err := s.render(rendercache.Key(p.Mode, string(kind), ext, digest), func() ([]byte, error) {
		panel, _ := dashboard.Compose(p, s.frames).Panel(kind)
		if ext == ".png" {
			return raster.PNG(panel.Surface)
		}
		return []byte(surface.SVG(panel.Surface)), nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("mode", p.Mode).Str("chart", string(kind)).Msg("render chart")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ext == ".png" {
		s.writeBytes(w, contentTypePNG, b)
		return
	}
	s.writeBytes(w, contentTypeSVG, b)
}

// GET /api/modes/{mode}/summary?format=md|csv — run digest.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.load(w, r)
	if !ok {
		return
	}
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "", "md", "markdown":
		s.writeBytes(w, contentTypeMD, []byte(dashboard.RenderMarkdown(p)))
	case "csv":
		s.writeSummaryCSV(w, p)
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q (supported: md|csv)", format))
	}
}

func (s *Server) writeSummaryCSV(w http.ResponseWriter, p payload.Payload) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	cw := csv.NewWriter(w)
	header := []string{
		"mode",
		"title",
		"dataset",
		"model",
		"horizon",
		"context_length",
		"tail_risk_score",
		"regime_shift_score",
		"mae",
		"rmse",
		"nll",
		"crps",
		"coverage",
	}
	m := p.Metrics
	record := []string{
		p.Mode,
		p.Title,
		p.Dataset,
		p.Model,
		strconv.Itoa(p.Horizon),
		strconv.Itoa(p.ContextLength),
		fmt.Sprintf("%.6f", p.TailRiskScore),
		fmt.Sprintf("%.6f", p.RegimeShiftScore),
		fmt.Sprintf("%.6f", m.MAE),
		fmt.Sprintf("%.6f", m.RMSE),
		fmt.Sprintf("%.6f", m.NLL),
		fmt.Sprintf("%.6f", m.CRPS),
		fmt.Sprintf("%.6f", m.Coverage),
	}
	if err := cw.Write(header); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := cw.Write(record); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GET /api/modes/{mode}/export.xlsx — workbook with every chart series.
func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	p, digest, ok := s.load(w, r)
	if !ok {
		return
	}
	b, err := s.render(rendercache.Key(p.Mode, "workbook", digest), func() ([]byte, error) {
		var buf bytes.Buffer
		if err := workbook.Write(&buf, p); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("mode", p.Mode).Msg("export workbook")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "forecastviz-"+p.Mode+".xlsx"))
	s.writeBytes(w, contentTypeXLSX, b)
}

// GET /lab — mode index page.
func (s *Server) handleLab(w http.ResponseWriter, _ *http.Request) {
	s.writeBytes(w, contentTypeHTML, []byte(dashboard.RenderLabHTML(payload.ModeCards())))
}

// GET /lab/modes/{mode} — dashboard page.
func (s *Server) handleLabMode(w http.ResponseWriter, r *http.Request) {
	p, digest, ok := s.load(w, r)
	if !ok {
		return
	}
	b, err := s.render(rendercache.Key(p.Mode, "page", digest), func() ([]byte, error) {
		return []byte(dashboard.RenderHTML(dashboard.Compose(p, s.frames))), nil
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeBytes(w, contentTypeHTML, b)
}
