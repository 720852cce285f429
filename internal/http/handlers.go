package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"ledgerviz/internal/chart"
	"ledgerviz/internal/export"
	"ledgerviz/internal/ledger"
	applog "ledgerviz/internal/log"
)

type pageData struct {
	HasLedger  bool
	ConvertURL string
	Metrics    []chart.Metric
}

// handleIndex renders the page. Figures are fetched by the page script; the
// metric row is rendered inline so it shows without JavaScript.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{ConvertURL: s.convertURL}

	view, err := s.viz.CashFlow(r.Context())
	switch {
	case errors.Is(err, ledger.ErrNoLedger):
	case err != nil:
		s.fail(w, r, "Failed to render cash flow", err)
		return
	default:
		data.HasLedger = true
		data.Metrics = view.Metrics
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "visualizations.html", data); err != nil {
		s.fail(w, r, "Failed to execute template", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	view, err := s.viz.CashFlow(r.Context())
	if s.absentOrFailed(w, r, "Failed to render cash flow", err) {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	view, err := s.viz.Heatmap(r.Context())
	if s.absentOrFailed(w, r, "Failed to render heatmaps", err) {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleExport builds the workbook in memory so a failure still yields a 500
// instead of a truncated download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.viz.Report(r.Context())
	if s.absentOrFailed(w, r, "Failed to build report", err) {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReport(&buf, rep.Buckets, rep.Summary, rep.Cells); err != nil {
		s.fail(w, r, "Failed to write workbook", err)
		return
	}
	applog.FromContext(r.Context()).WithComponent(applog.ComponentExport).InfoContext(r.Context(), "Report exported",
		applog.FieldOperation, applog.OpExport,
		applog.FieldTransactions, len(rep.Ledger),
		"bytes", buf.Len())

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady loads the ledger source; a missing ledger still counts as ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	checks := map[string]string{"templates": "ok", "ledger": "ok"}
	status, code := "ready", http.StatusOK
	if err := s.viz.Ready(ctx); err != nil {
		checks["ledger"] = "failed: " + err.Error()
		status, code = "not_ready", http.StatusServiceUnavailable
		applog.FromContext(ctx).WarnContext(ctx, "Readiness check failed", applog.FieldError, err)
	}
	writeJSON(w, code, map[string]any{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// absentOrFailed answers 204 for a missing ledger and 500 for other errors.
// It reports whether a response has been written.
func (s *Server) absentOrFailed(w http.ResponseWriter, r *http.Request, msg string, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ledger.ErrNoLedger):
		w.WriteHeader(http.StatusNoContent)
	default:
		s.fail(w, r, msg, err)
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogError(r.Context(), msg, err, applog.ComponentHTTP, applog.OpRender, nil)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
