package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// AnalysisRepository stores analysis snapshots as JSONB documents.  The
// result is an immutable value object consumed whole, so a document column
// beats a relational decomposition of grids and sections.
type AnalysisRepository struct {
	db     *sql.DB
	logger logging.Logger
}

// NewAnalysisRepository constructs an AnalysisRepository.
func NewAnalysisRepository(conn *Connection, logger logging.Logger) *AnalysisRepository {
	return &AnalysisRepository{db: conn.DB(), logger: logger.Named("analysis_repo")}
}

func (r *AnalysisRepository) Save(ctx context.Context, result *notetypes.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "marshal analysis result")
	}

	const q = `
		INSERT INTO analyses (note_id, result, analyzed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (note_id) DO UPDATE SET
			result      = EXCLUDED.result,
			analyzed_at = EXCLUDED.analyzed_at`

	_, err = r.db.ExecContext(ctx, q, string(result.NoteID), payload, result.AnalyzedAt.Time())
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeAnalysisStoreFailed, "save analysis")
	}
	return nil
}

func (r *AnalysisRepository) FindByNoteID(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error) {
	const q = `SELECT result, analyzed_at FROM analyses WHERE note_id = $1`

	var payload []byte
	var analyzedAt time.Time
	err := r.db.QueryRowContext(ctx, q, string(noteID)).Scan(&payload, &analyzedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeAnalysisNotFound, "analysis not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "load analysis")
	}

	result := &notetypes.AnalysisResult{}
	if err := json.Unmarshal(payload, result); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "unmarshal analysis result")
	}
	return result, nil
}

func (r *AnalysisRepository) DeleteByNoteID(ctx context.Context, noteID common.ID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE note_id = $1`, string(noteID))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "delete analysis")
	}
	return nil
}
