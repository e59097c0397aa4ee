package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/CarePath-Insight/internal/application/analysis"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
)

// NoteHandler serves the /notes resource.
type NoteHandler struct {
	service analysis.Service
	logger  logging.Logger
}

// NewNoteHandler constructs a NoteHandler.
func NewNoteHandler(service analysis.Service, logger logging.Logger) *NoteHandler {
	return &NoteHandler{service: service, logger: logger.Named("http.notes")}
}

// SubmitRequest is the POST /notes body.
type SubmitRequest struct {
	RawText    string `json:"raw_text"`
	PatientRef string `json:"patient_ref,omitempty"`
}

// Submit stores a raw discharge note.
func (h *NoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, errors.InvalidParam("request body must be JSON"))
		return
	}

	n, err := h.service.SubmitNote(r.Context(), &analysis.SubmitInput{
		RawText:    req.RawText,
		PatientRef: req.PatientRef,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// Get returns one stored note.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "noteID"))
	n, err := h.service.GetNote(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// List returns stored notes, newest first.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)
	notes, total, err := h.service.ListNotes(r.Context(), p)
	if err != nil {
		writeAppError(w, err)
		return
	}
	p.Total = total
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notes":      notes,
		"pagination": p,
	})
}

// Delete removes a note and its analysis.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "noteID"))
	if err := h.service.DeleteNote(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Analysis returns the stored analysis for a note, computing it on first
// access.
func (h *NoteHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "noteID"))
	result, err := h.service.GetAnalysis(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Readiness returns just the discharge-readiness grid of a note's analysis.
func (h *NoteHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "noteID"))
	result, err := h.service.GetAnalysis(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"note_id":        result.NoteID,
		"readiness_grid": result.ReadinessGrid,
	})
}

// Risk returns the risk grid and the derived composite trend.
func (h *NoteHandler) Risk(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "noteID"))
	result, err := h.service.GetAnalysis(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"note_id":        result.NoteID,
		"risk_grid":      result.RiskGrid,
		"risk_composite": result.RiskComposite,
	})
}

// Logistics returns the logistics summary of a note's analysis.
func (h *NoteHandler) Logistics(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "noteID"))
	result, err := h.service.GetAnalysis(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"note_id":   result.NoteID,
		"logistics": result.Logistics,
	})
}

// Reanalyze forces a fresh pipeline run over a stored note.
func (h *NoteHandler) Reanalyze(w http.ResponseWriter, r *http.Request) {
	id := common.ID(chi.URLParam(r, "noteID"))
	result, err := h.service.AnalyzeNote(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
