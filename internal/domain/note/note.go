// Package note holds the discharge-note domain entity and its repository
// contracts.  Application services depend on these interfaces; the concrete
// PostgreSQL implementations live under internal/infrastructure.
package note

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// Note is a raw discharge note as submitted, before any analysis.
type Note struct {
	ID         common.ID `json:"id"`
	PatientRef string    `json:"patient_ref,omitempty"`
	RawText    string    `json:"raw_text"`
	// Fingerprint is the SHA-256 of the normalized raw text; identical notes
	// share a fingerprint and therefore a cached analysis.
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewNote constructs a Note with a generated ID and computed fingerprint.
func NewNote(rawText, patientRef string) (*Note, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, errors.InvalidParam("raw_text must not be empty")
	}
	now := time.Now().UTC()
	return &Note{
		ID:          common.GenerateID("note"),
		PatientRef:  patientRef,
		RawText:     rawText,
		Fingerprint: Fingerprint(rawText),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Fingerprint hashes note text after trimming surrounding whitespace, so
// trailing-newline variants of the same note dedupe to one analysis.
func Fingerprint(rawText string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(rawText)))
	return hex.EncodeToString(sum[:])
}

// Repository is the persistence contract for raw notes.
type Repository interface {
	Save(ctx context.Context, n *Note) error
	FindByID(ctx context.Context, id common.ID) (*Note, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (*Note, error)
	List(ctx context.Context, p common.Pagination) ([]*Note, int64, error)
	Delete(ctx context.Context, id common.ID) error
}

// AnalysisRepository persists completed analysis results keyed by note.
type AnalysisRepository interface {
	Save(ctx context.Context, result *notetypes.AnalysisResult) error
	FindByNoteID(ctx context.Context, noteID common.ID) (*notetypes.AnalysisResult, error)
	DeleteByNoteID(ctx context.Context, noteID common.ID) error
}
