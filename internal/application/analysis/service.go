// Package analysis provides the application-level service for discharge-note
// analysis.  It sits between the HTTP/CLI interfaces and the intelligence
// pipeline, adding note persistence, result caching, archival, and event
// publication around the pure pipeline computation.
package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	domainnote "github.com/turtacn/CarePath-Insight/internal/domain/note"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	intcommon "github.com/turtacn/CarePath-Insight/internal/intelligence/common"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// TopicNoteAnalyzed is the event-bus topic carrying completed analyses.
const TopicNoteAnalyzed = "carepath.note.analyzed"

// Cache stores analysis results keyed by note fingerprint.  A miss is
// (nil, false, nil); errors indicate the cache itself failed.
type Cache interface {
	GetResult(ctx context.Context, fingerprint string) (*notetypes.AnalysisResult, bool, error)
	SetResult(ctx context.Context, fingerprint string, result *notetypes.AnalysisResult) error
}

// Publisher emits platform events to the message bus.
type Publisher interface {
	Publish(ctx context.Context, msg common.ProducerMessage) error
}

// BlobStore archives raw note text in object storage.
type BlobStore interface {
	PutNote(ctx context.Context, id common.ID, rawText string) error
}

// Service defines the application operations over discharge notes.
type Service interface {
	// SubmitNote stores a raw note and returns the persisted entity.
	// Submitting text identical to an existing note returns that note.
	SubmitNote(ctx context.Context, input *SubmitInput) (*domainnote.Note, error)

	// Analyze runs the pipeline over ad-hoc note text without persisting
	// anything.  The fingerprint cache is still consulted.
	Analyze(ctx context.Context, rawText string) (*notetypes.AnalysisResult, error)

	// AnalyzeNote runs the pipeline over a stored note and persists the
	// result.
	AnalyzeNote(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error)

	GetNote(ctx context.Context, noteID common.ID) (*domainnote.Note, error)
	ListNotes(ctx context.Context, p common.Pagination) ([]*domainnote.Note, int64, error)
	DeleteNote(ctx context.Context, noteID common.ID) error

	// GetAnalysis returns the stored result for a note, computing and
	// persisting it on first access.
	GetAnalysis(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error)
}

// SubmitInput carries a note submission.
type SubmitInput struct {
	RawText    string
	PatientRef string
}

// serviceImpl implements Service.  Cache, publisher, and blob store are
// optional collaborators: when absent, or when they fail, the service
// degrades to plain recomputation rather than surfacing the failure.
type serviceImpl struct {
	notes    domainnote.Repository
	analyses domainnote.AnalysisRepository
	cache    Cache
	producer Publisher
	blobs    BlobStore
	pipeline *Pipeline
	metrics  intcommon.NoteMetrics
	maxBytes int64
	logger   logging.Logger
}

// Options carries optional collaborators for NewService.
type Options struct {
	Cache     Cache
	Producer  Publisher
	BlobStore BlobStore
	Metrics   intcommon.NoteMetrics
	// MaxNoteBytes bounds accepted note size; 0 means unlimited.
	MaxNoteBytes int64
}

// NewService creates the analysis application service.
func NewService(notes domainnote.Repository, analyses domainnote.AnalysisRepository, opts Options, logger logging.Logger) Service {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = intcommon.NewNoopMetrics()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		notes:    notes,
		analyses: analyses,
		cache:    opts.Cache,
		producer: opts.Producer,
		blobs:    opts.BlobStore,
		pipeline: NewPipeline(metrics),
		metrics:  metrics,
		maxBytes: opts.MaxNoteBytes,
		logger:   logger.Named("analysis"),
	}
}

func (s *serviceImpl) SubmitNote(ctx context.Context, input *SubmitInput) (*domainnote.Note, error) {
	if err := s.validateText(input.RawText); err != nil {
		return nil, err
	}

	if existing, err := s.notes.FindByFingerprint(ctx, domainnote.Fingerprint(input.RawText)); err == nil && existing != nil {
		return existing, nil
	}

	n, err := domainnote.NewNote(input.RawText, input.PatientRef)
	if err != nil {
		return nil, err
	}
	if err := s.notes.Save(ctx, n); err != nil {
		s.logger.Error("save note failed", logging.Err(err), logging.String("note_id", string(n.ID)))
		return nil, err
	}

	if s.blobs != nil {
		if err := s.blobs.PutNote(ctx, n.ID, n.RawText); err != nil {
			// Archive is best-effort; the note itself is already durable.
			s.logger.Warn("note archive failed", logging.Err(err), logging.String("note_id", string(n.ID)))
		}
	}

	return n, nil
}

func (s *serviceImpl) Analyze(ctx context.Context, rawText string) (*notetypes.AnalysisResult, error) {
	if err := s.validateText(rawText); err != nil {
		return nil, err
	}
	return s.analyzeCached(ctx, domainnote.Fingerprint(rawText), rawText), nil
}

func (s *serviceImpl) AnalyzeNote(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error) {
	n, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	result := s.analyzeCached(ctx, n.Fingerprint, n.RawText)
	result.NoteID = n.ID

	if err := s.analyses.Save(ctx, result); err != nil {
		s.logger.Error("save analysis failed", logging.Err(err), logging.String("note_id", string(n.ID)))
		return nil, err
	}

	s.publishAnalyzed(ctx, result)
	return result, nil
}

func (s *serviceImpl) GetNote(ctx context.Context, noteID common.ID) (*domainnote.Note, error) {
	return s.notes.FindByID(ctx, noteID)
}

func (s *serviceImpl) ListNotes(ctx context.Context, p common.Pagination) ([]*domainnote.Note, int64, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return s.notes.List(ctx, p)
}

func (s *serviceImpl) DeleteNote(ctx context.Context, noteID common.ID) error {
	if err := s.analyses.DeleteByNoteID(ctx, noteID); err != nil && !errors.IsNotFound(err) {
		return err
	}
	return s.notes.Delete(ctx, noteID)
}

func (s *serviceImpl) GetAnalysis(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error) {
	if result, err := s.analyses.FindByNoteID(ctx, noteID); err == nil {
		return result, nil
	} else if !errors.IsNotFound(err) {
		return nil, err
	}
	return s.AnalyzeNote(ctx, noteID)
}

// analyzeCached consults the fingerprint cache before running the pipeline.
// Cache failures are logged and treated as misses.
func (s *serviceImpl) analyzeCached(ctx context.Context, fingerprint, rawText string) *notetypes.AnalysisResult {
	if s.cache != nil {
		cached, hit, err := s.cache.GetResult(ctx, fingerprint)
		if err != nil {
			s.logger.Warn("result cache lookup failed", logging.Err(err))
		} else if hit {
			s.metrics.IncCacheHit()
			return cached
		}
		s.metrics.IncCacheMiss()
	}

	start := time.Now()
	result := s.pipeline.Run(rawText)
	s.metrics.ObserveAnalysis(time.Since(start), true)

	if s.cache != nil {
		if err := s.cache.SetResult(ctx, fingerprint, result); err != nil {
			s.logger.Warn("result cache store failed", logging.Err(err))
		}
	}
	return result
}

// publishAnalyzed emits the analyzed event; failures are logged, never
// surfaced, so a broker outage does not fail analysis requests.
func (s *serviceImpl) publishAnalyzed(ctx context.Context, result *notetypes.AnalysisResult) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("marshal analyzed event failed", logging.Err(err))
		return
	}
	msg := common.ProducerMessage{
		Topic:     TopicNoteAnalyzed,
		Key:       []byte(result.NoteID),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, msg); err != nil {
		s.logger.Warn("publish analyzed event failed", logging.Err(err),
			logging.String("note_id", string(result.NoteID)))
	}
}

func (s *serviceImpl) validateText(rawText string) error {
	if strings.TrimSpace(rawText) == "" {
		return errors.InvalidParam("note text must not be empty")
	}
	if s.maxBytes > 0 && int64(len(rawText)) > s.maxBytes {
		return errors.InvalidParam("note text exceeds the configured size limit")
	}
	return nil
}
