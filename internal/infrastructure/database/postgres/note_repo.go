package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	domainnote "github.com/turtacn/CarePath-Insight/internal/domain/note"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
)

// NoteRepository is the PostgreSQL implementation of the note repository.
type NoteRepository struct {
	db     *sql.DB
	logger logging.Logger
}

// NewNoteRepository constructs a NoteRepository over an established connection.
func NewNoteRepository(conn *Connection, logger logging.Logger) *NoteRepository {
	return &NoteRepository{db: conn.DB(), logger: logger.Named("note_repo")}
}

const noteColumns = `id, patient_ref, raw_text, fingerprint, created_at, updated_at`

func (r *NoteRepository) Save(ctx context.Context, n *domainnote.Note) error {
	const q = `
		INSERT INTO notes (id, patient_ref, raw_text, fingerprint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			patient_ref = EXCLUDED.patient_ref,
			raw_text    = EXCLUDED.raw_text,
			fingerprint = EXCLUDED.fingerprint,
			updated_at  = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, q,
		string(n.ID), n.PatientRef, n.RawText, n.Fingerprint, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeNoteStoreFailed, "save note")
	}
	return nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id common.ID) (*domainnote.Note, error) {
	const q = `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, string(id)))
}

func (r *NoteRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*domainnote.Note, error) {
	const q = `SELECT ` + noteColumns + ` FROM notes WHERE fingerprint = $1 ORDER BY created_at LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, fingerprint))
}

func (r *NoteRepository) List(ctx context.Context, p common.Pagination) ([]*domainnote.Note, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "count notes")
	}

	const q = `SELECT ` + noteColumns + ` FROM notes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	offset := (p.Page - 1) * p.PageSize
	rows, err := r.db.QueryContext(ctx, q, p.PageSize, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "list notes")
	}
	defer rows.Close()

	notes := []*domainnote.Note{}
	for rows.Next() {
		n := &domainnote.Note{}
		var id string
		if err := rows.Scan(&id, &n.PatientRef, &n.RawText, &n.Fingerprint, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan note row")
		}
		n.ID = common.ID(id)
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate note rows")
	}
	return notes, total, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id common.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, string(id))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "delete note")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errors.New(errors.ErrCodeNoteNotFound, "note not found")
	}
	return nil
}

func (r *NoteRepository) scanOne(row *sql.Row) (*domainnote.Note, error) {
	n := &domainnote.Note{}
	var id string
	err := row.Scan(&id, &n.PatientRef, &n.RawText, &n.Fingerprint, &n.CreatedAt, &n.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeNoteNotFound, "note not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan note")
	}
	n.ID = common.ID(id)
	return n, nil
}
