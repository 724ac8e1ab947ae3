package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shelfworks/bookintake/internal/core/domain"
	"github.com/shelfworks/bookintake/internal/core/ports"
	"github.com/shelfworks/bookintake/internal/observability/metrics"
)

type TrafficConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxConcurrent  int
}

type Router struct {
	analyzer ports.Analyzer
	metrics  *metrics.Metrics
	traffic  TrafficConfig
}

func NewRouter(analyzer ports.Analyzer, m *metrics.Metrics, traffic TrafficConfig) *Router {
	return &Router{
		analyzer: analyzer,
		metrics:  m,
		traffic:  traffic,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.root)
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/analyze-pdf", rt.analyze)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.traffic.MaxConcurrent, 5*time.Second)
	handler = rateLimitMiddleware(handler, rt.traffic.RateLimitRPS, rt.traffic.RateLimitBurst)
	handler = rt.metrics.Middleware(handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("bookintake up"))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		PDFKey   string `json:"pdf_key"`
		FilePath string `json:"file_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	key := strings.TrimSpace(req.PDFKey)
	if key == "" {
		key = strings.TrimSpace(req.FilePath)
	}
	if key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "pdf_key is required"})
		return
	}

	start := time.Now()
	outcome, err := rt.analyzer.Analyze(r.Context(), key)
	if err != nil {
		rt.metrics.ObservePipeline("failed", time.Since(start))
		writeAnalyzeError(w, err)
		return
	}
	rt.metrics.ObservePipeline(string(outcome.Status), time.Since(start))

	if outcome.Status == domain.StatusAlreadyProcessed {
		writeJSON(w, http.StatusOK, map[string]any{
			"file":          outcome.SourceKey,
			"status":        string(outcome.Status),
			"cover_image":   outcome.CoverKey,
			"metadata_json": outcome.MetadataKey,
		})
		return
	}

	response := map[string]any{
		"status":        string(outcome.Status),
		"original_pdf":  outcome.SourceKey,
		"final_pdf":     outcome.FinalKey,
		"metadata_json": outcome.MetadataKey,
		"metadata":      outcome.Metadata,
	}
	if outcome.CoverKey != "" {
		response["cover_image"] = outcome.CoverKey
	}
	writeJSON(w, http.StatusOK, response)
}

func writeAnalyzeError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)
	message := err.Error()
	if msg, ok := domain.UserMessage(err); ok {
		message = msg
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
