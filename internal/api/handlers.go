// Package api exposes HTTP handlers for the dashboard service.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RichardAtCT/garmin-health-dashboard/internal/analysis"
	"github.com/RichardAtCT/garmin-health-dashboard/internal/auth"
	"github.com/RichardAtCT/garmin-health-dashboard/internal/domain"
	"github.com/RichardAtCT/garmin-health-dashboard/internal/ingest"
	"github.com/RichardAtCT/garmin-health-dashboard/internal/observability"
	"github.com/RichardAtCT/garmin-health-dashboard/internal/store"
)

// Default thresholds for the ranked correlations view.
const (
	defaultMinAbsR   = 0.25
	defaultMaxPValue = 0.05
)

// Handler coordinates HTTP requests with the ingest pipeline and the
// in-memory upload store.
type Handler struct {
	store          *store.Store
	aggregator     *ingest.Aggregator
	maxUploadBytes int64
}

// NewHandler builds a Handler.
func NewHandler(uploads *store.Store, aggregator *ingest.Aggregator, maxUploadBytes int64) *Handler {
	return &Handler{store: uploads, aggregator: aggregator, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/exports", h.exports)
	mux.HandleFunc("/v1/exports/", h.exportByID)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) exports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.uploadExport(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) uploadExport(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeExportsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope exports:write required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("archive")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "multipart field 'archive' required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to read upload")
		return
	}

	entries, err := ingest.OpenZip(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_archive", "archive is not a readable ZIP")
		return
	}

	export := h.aggregator.Aggregate(entries)
	if export.Empty() {
		writeError(w, http.StatusUnprocessableEntity, "no_recognizable_data", "archive contained no recognizable records")
		return
	}

	upload := h.store.Put(header.Filename, export)
	observability.RecordExportIngested(upload.ReceivedAt, export.RecordCount())

	writeJSON(w, http.StatusCreated, toExportSummary(upload))
}

func (h *Handler) exportByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeExportsRead) && !claims.HasScope(auth.ScopeExportsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope exports:read required")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/exports/")
	segments := strings.Split(strings.Trim(rest, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing export id")
		return
	}

	upload, ok := h.store.Get(segments[0])
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "export not found")
		return
	}

	if len(segments) == 1 {
		writeJSON(w, http.StatusOK, toExportSummary(upload))
		return
	}

	report := analysis.NewReport(upload.Export)
	switch segments[1] {
	case "correlations":
		h.correlations(w, r, report)
	case "patterns":
		writeJSON(w, http.StatusOK, PatternsResponse{Patterns: report.WeeklyPatterns()})
	case "insights":
		writeJSON(w, http.StatusOK, InsightsResponse{Insights: report.Insights()})
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown analysis view")
	}
}

func (h *Handler) correlations(w http.ResponseWriter, r *http.Request, report *analysis.Report) {
	minAbsR := defaultMinAbsR
	if raw := r.URL.Query().Get("min_r"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 && parsed <= 1 {
			minAbsR = parsed
		}
	}

	maxPValue := defaultMaxPValue
	if raw := r.URL.Query().Get("max_p"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 && parsed <= 1 {
			maxPValue = parsed
		}
	}

	ranked := analysis.RankByStrength(report.CorrelationMatrix(), minAbsR, maxPValue)
	writeJSON(w, http.StatusOK, CorrelationsResponse{
		Items:     ranked,
		MinAbsR:   minAbsR,
		MaxPValue: maxPValue,
	})
}

// ExportSummary describes one stored upload.
type ExportSummary struct {
	UploadID   string       `json:"upload_id"`
	Filename   string       `json:"filename,omitempty"`
	ReceivedAt time.Time    `json:"received_at"`
	Counts     RecordCounts `json:"counts"`
	DateRanges RecordRanges `json:"date_ranges"`
}

// RecordCounts breaks the export down per collection.
type RecordCounts struct {
	Sleep       int `json:"sleep"`
	Wellness    int `json:"wellness"`
	Hydration   int `json:"hydration"`
	Activities  int `json:"activities"`
	BodyMetrics int `json:"body_metrics"`
	Unknown     int `json:"unknown"`
}

// DateRange is the first and last calendar date of a collection.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RecordRanges holds the covered dates per collection; empty
// collections are omitted.
type RecordRanges struct {
	Sleep       *DateRange `json:"sleep,omitempty"`
	Wellness    *DateRange `json:"wellness,omitempty"`
	Hydration   *DateRange `json:"hydration,omitempty"`
	Activities  *DateRange `json:"activities,omitempty"`
	BodyMetrics *DateRange `json:"body_metrics,omitempty"`
}

// CorrelationsResponse packages the ranked correlation matrix.
type CorrelationsResponse struct {
	Items     []analysis.MetricCorrelation `json:"items"`
	MinAbsR   float64                      `json:"min_abs_r"`
	MaxPValue float64                      `json:"max_p_value"`
}

// PatternsResponse wraps the day-of-week aggregates.
type PatternsResponse struct {
	Patterns analysis.WeeklyPatterns `json:"patterns"`
}

// InsightsResponse wraps the rule-based observations.
type InsightsResponse struct {
	Insights []analysis.Insight `json:"insights"`
}

func toExportSummary(upload *store.Upload) ExportSummary {
	export := upload.Export
	return ExportSummary{
		UploadID:   upload.ID,
		Filename:   upload.Filename,
		ReceivedAt: upload.ReceivedAt,
		Counts: RecordCounts{
			Sleep:       len(export.Sleep),
			Wellness:    len(export.Wellness),
			Hydration:   len(export.Hydration),
			Activities:  len(export.Activities),
			BodyMetrics: len(export.BodyMetrics),
			Unknown:     len(export.Unknown),
		},
		DateRanges: toRecordRanges(export),
	}
}

// toRecordRanges reads each collection's covered dates off its first
// and last element; the export is sorted chronologically by then.
func toRecordRanges(export *domain.Export) RecordRanges {
	var ranges RecordRanges
	if n := len(export.Sleep); n > 0 {
		ranges.Sleep = &DateRange{From: export.Sleep[0].CalendarDate, To: export.Sleep[n-1].CalendarDate}
	}
	if n := len(export.Wellness); n > 0 {
		ranges.Wellness = &DateRange{From: export.Wellness[0].CalendarDate, To: export.Wellness[n-1].CalendarDate}
	}
	if n := len(export.Hydration); n > 0 {
		ranges.Hydration = &DateRange{From: export.Hydration[0].CalendarDate, To: export.Hydration[n-1].CalendarDate}
	}
	if n := len(export.Activities); n > 0 {
		ranges.Activities = &DateRange{
			From: export.Activities[0].StartTime.Format("2006-01-02"),
			To:   export.Activities[n-1].StartTime.Format("2006-01-02"),
		}
	}
	if n := len(export.BodyMetrics); n > 0 {
		ranges.BodyMetrics = &DateRange{From: export.BodyMetrics[0].CalendarDate, To: export.BodyMetrics[n-1].CalendarDate}
	}
	return ranges
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
