package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/CarePath-Insight/internal/application/analysis"
	"github.com/turtacn/CarePath-Insight/internal/application/reporting"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
)

// AnalysisHandler serves ad-hoc analysis and report rendering.
type AnalysisHandler struct {
	service  analysis.Service
	renderer reporting.Renderer
	logger   logging.Logger
}

// NewAnalysisHandler constructs an AnalysisHandler.
func NewAnalysisHandler(service analysis.Service, renderer reporting.Renderer, logger logging.Logger) *AnalysisHandler {
	return &AnalysisHandler{service: service, renderer: renderer, logger: logger.Named("http.analysis")}
}

// AnalyzeRequest is the POST /analyze body.
type AnalyzeRequest struct {
	RawText string `json:"raw_text"`
}

// Analyze runs the pipeline over ad-hoc note text without persisting it.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, errors.InvalidParam("request body must be JSON"))
		return
	}

	result, err := h.service.Analyze(r.Context(), req.RawText)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Report renders a stored note's analysis as a document.  The format query
// parameter selects markdown (default) or text.
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "noteID"))
	result, err := h.service.GetAnalysis(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	format := reporting.Format(r.URL.Query().Get("format"))
	doc, err := h.renderer.Render(result, format)
	if err != nil {
		writeAppError(w, err)
		return
	}

	contentType := "text/markdown; charset=utf-8"
	if format == reporting.FormatText {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
