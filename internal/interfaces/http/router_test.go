package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CarePath-Insight/internal/application/analysis"
	"github.com/turtacn/CarePath-Insight/internal/application/reporting"
	domainnote "github.com/turtacn/CarePath-Insight/internal/domain/note"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/internal/interfaces/http/handlers"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// stubService satisfies analysis.Service with overridable behaviors so each
// test controls exactly the calls its route makes.
type stubService struct {
	submitFn      func(ctx context.Context, input *analysis.SubmitInput) (*domainnote.Note, error)
	analyzeFn     func(ctx context.Context, rawText string) (*notetypes.AnalysisResult, error)
	analyzeNoteFn func(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error)
	getNoteFn     func(ctx context.Context, noteID common.ID) (*domainnote.Note, error)
	listNotesFn   func(ctx context.Context, p common.Pagination) ([]*domainnote.Note, int64, error)
	deleteNoteFn  func(ctx context.Context, noteID common.ID) error
	getAnalysisFn func(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error)
}

func (s *stubService) SubmitNote(ctx context.Context, input *analysis.SubmitInput) (*domainnote.Note, error) {
	return s.submitFn(ctx, input)
}

func (s *stubService) Analyze(ctx context.Context, rawText string) (*notetypes.AnalysisResult, error) {
	return s.analyzeFn(ctx, rawText)
}

func (s *stubService) AnalyzeNote(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error) {
	return s.analyzeNoteFn(ctx, noteID)
}

func (s *stubService) GetNote(ctx context.Context, noteID common.ID) (*domainnote.Note, error) {
	return s.getNoteFn(ctx, noteID)
}

func (s *stubService) ListNotes(ctx context.Context, p common.Pagination) ([]*domainnote.Note, int64, error) {
	return s.listNotesFn(ctx, p)
}

func (s *stubService) DeleteNote(ctx context.Context, noteID common.ID) error {
	return s.deleteNoteFn(ctx, noteID)
}

func (s *stubService) GetAnalysis(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error) {
	return s.getAnalysisFn(ctx, noteID)
}

type stubPinger struct{ err error }

func (p *stubPinger) HealthCheck(context.Context) error { return p.err }

func newTestRouter(t *testing.T, svc analysis.Service, deps map[string]handlers.Pinger) http.Handler {
	t.Helper()
	logger := logging.NewNopLogger()
	return NewRouter(&RouterConfig{
		NoteHandler:     handlers.NewNoteHandler(svc, logger),
		AnalysisHandler: handlers.NewAnalysisHandler(svc, reporting.MustNewRenderer(), logger),
		HealthHandler:   handlers.NewHealthHandler(deps),
		Logger:          logger,
	})
}

func TestHealthProbes(t *testing.T) {
	router := newTestRouter(t, &stubService{}, map[string]handlers.Pinger{
		"postgres": &stubPinger{},
		"redis":    &stubPinger{err: errors.New(errors.ErrCodeCacheError, "redis down")},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Checks["postgres"])
	assert.Contains(t, body.Checks["redis"], "redis down")
}

func TestSubmitNote(t *testing.T) {
	svc := &stubService{
		submitFn: func(_ context.Context, input *analysis.SubmitInput) (*domainnote.Note, error) {
			return domainnote.NewNote(input.RawText, input.PatientRef)
		},
	}
	router := newTestRouter(t, svc, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes",
		strings.NewReader(`{"raw_text":"Patient Name: Jane Roe","patient_ref":"mrn-42"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var n domainnote.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &n))
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "mrn-42", n.PatientRef)
}

func TestSubmitNoteRejectsBadJSON(t *testing.T) {
	router := newTestRouter(t, &stubService{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeBadRequest.String(), resp.Code)
}

func TestGetNoteNotFound(t *testing.T) {
	svc := &stubService{
		getNoteFn: func(context.Context, common.ID) (*domainnote.Note, error) {
			return nil, errors.New(errors.ErrCodeNoteNotFound, "note missing-id not found")
		},
	}
	router := newTestRouter(t, svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notes/missing-id", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeNoteNotFound.String(), resp.Code)
}

func TestServerErrorsAreMasked(t *testing.T) {
	svc := &stubService{
		getNoteFn: func(context.Context, common.ID) (*domainnote.Note, error) {
			return nil, errors.New(errors.ErrCodeDatabaseError, "dial tcp 10.0.0.8:5432: connection refused")
		},
	}
	router := newTestRouter(t, svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notes/n-1", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeInternal.String(), resp.Code)
	assert.NotContains(t, resp.Message, "10.0.0.8")
}

func TestAdHocAnalyze(t *testing.T) {
	svc := &stubService{
		analyzeFn: func(_ context.Context, rawText string) (*notetypes.AnalysisResult, error) {
			if strings.TrimSpace(rawText) == "" {
				return nil, errors.New(errors.ErrCodeNoteEmpty, "note text is empty")
			}
			return &notetypes.AnalysisResult{
				Phases: []notetypes.Phase{{Key: notetypes.PhasePatientInfo, Label: "Patient Information", Order: -1}},
			}, nil
		},
	}
	router := newTestRouter(t, svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze",
		strings.NewReader(`{"raw_text":"Patient Name: Jane Roe"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var result notetypes.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Phases, 1)
	assert.Equal(t, notetypes.PhasePatientInfo, result.Phases[0].Key)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze",
		strings.NewReader(`{"raw_text":""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListNotesPassesPagination(t *testing.T) {
	var seen common.Pagination
	svc := &stubService{
		listNotesFn: func(_ context.Context, p common.Pagination) ([]*domainnote.Note, int64, error) {
			seen = p
			return []*domainnote.Note{}, 0, nil
		},
	}
	router := newTestRouter(t, svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notes?page=3&page_size=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, seen.Page)
	assert.Equal(t, 5, seen.PageSize)
}

func TestDeleteNote(t *testing.T) {
	svc := &stubService{
		deleteNoteFn: func(context.Context, common.ID) error { return nil },
	}
	router := newTestRouter(t, svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/notes/n-1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFacetRoutesSliceAnalysis(t *testing.T) {
	svc := &stubService{
		getAnalysisFn: func(context.Context, common.ID) (*notetypes.AnalysisResult, error) {
			return &notetypes.AnalysisResult{
				NoteID:        "n-1",
				ReadinessGrid: []notetypes.GridRow{{Date: "5/4", Mobility: 1}},
				RiskGrid:      []notetypes.GridRow{{Date: "5/4", Mobility: 2}},
				RiskComposite: []notetypes.CompositePoint{{Date: "5/4", Score: 0.6}},
				Logistics: notetypes.LogisticsSummary{
					Patient: notetypes.PatientInfo{Name: "Jane Roe"},
				},
			}, nil
		},
	}
	router := newTestRouter(t, svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notes/n-1/readiness", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"readiness_grid"`)
	assert.NotContains(t, rec.Body.String(), `"risk_grid"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notes/n-1/risk", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"risk_composite"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notes/n-1/logistics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Roe")
}

func TestReportContentTypes(t *testing.T) {
	svc := &stubService{
		getAnalysisFn: func(context.Context, common.ID) (*notetypes.AnalysisResult, error) {
			return &notetypes.AnalysisResult{NoteID: "n-1"}, nil
		},
	}
	router := newTestRouter(t, svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notes/n-1/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "# Discharge Note Analysis")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notes/n-1/report?format=text", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, &stubService{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/notes", nil)
	req.Header.Set("Origin", "https://dashboard.example.org")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dashboard.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}
