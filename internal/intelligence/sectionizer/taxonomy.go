// Package sectionizer turns the free text of a hospital discharge note into
// phase-classified sections and phase-level event weights for the care
// timeline.  The pipeline is a chain of pure functions: classify lines,
// build rows, merge rows per phase, compute event weights.  No stage performs
// I/O and no stage returns an error for malformed clinical text; unparseable
// input degrades to empty output.
package sectionizer

import (
	"regexp"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// PhaseDefinition binds a timeline phase to the ordered set of header
// patterns that classify a raw line into it.
type PhaseDefinition struct {
	Key   note.PhaseKey
	Label string
	// Order defines left-to-right timeline sequencing.  patient_info is -1
	// and excluded from timeline weighting.
	Order int
	// Rules are evaluated in declaration order; the first matching pattern
	// claims the line for this phase.
	Rules []*regexp.Regexp
}

// Taxonomy is the ordered list of phase definitions.  Declaration order is
// the tie-break: when a line matches rules from two phases, the phase that
// appears earlier in the list wins.  Do not reorder.
type Taxonomy []PhaseDefinition

// DefaultTaxonomy returns the canonical care-timeline taxonomy:
// patient_info → home → er → unit → discharge → back_home.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{
			Key:   note.PhasePatientInfo,
			Label: "Patient Info",
			Order: -1,
			Rules: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^patient name\b`),
				regexp.MustCompile(`(?i)^age\s*/\s*gender\b`),
				regexp.MustCompile(`(?i)^admission date\b`),
				regexp.MustCompile(`(?i)^discharge date\b`),
				regexp.MustCompile(`(?i)^discharge disposition\b`),
				regexp.MustCompile(`(?i)^most responsible diagnosis\b`),
			},
		},
		{
			Key:   note.PhaseHome,
			Label: "Home",
			Order: 0,
			Rules: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^comorbidit`),
				regexp.MustCompile(`(?i)^past medical history\b`),
				regexp.MustCompile(`(?i)^home medications?\b`),
				regexp.MustCompile(`(?i)^social history\b`),
				regexp.MustCompile(`(?i)^baseline function\b`),
			},
		},
		{
			Key:   note.PhaseER,
			Label: "ER",
			Order: 1,
			Rules: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^hospital course\b`),
				regexp.MustCompile(`(?i)^presenting complaint\b`),
				regexp.MustCompile(`(?i)^reason for admission\b`),
				regexp.MustCompile(`(?i)^ed course\b`),
				regexp.MustCompile(`(?i)^emergency\b`),
			},
		},
		{
			Key:   note.PhaseUnit,
			Label: "Hospital Unit",
			Order: 2,
			Rules: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^hospital management\b`),
				regexp.MustCompile(`(?i)^consults?\b`),
				regexp.MustCompile(`(?i)^procedures?\b`),
				regexp.MustCompile(`(?i)^investigations?\b`),
			},
		},
		{
			Key:   note.PhaseDischarge,
			Label: "Discharge",
			Order: 3,
			Rules: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^discharge plan\b`),
				regexp.MustCompile(`(?i)^discharge goals?\b`),
				regexp.MustCompile(`(?i)^anticipated discharge\b`),
			},
		},
		{
			Key:   note.PhaseBackHome,
			Label: "Back Home",
			Order: 4,
			Rules: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^follow-?up\b`),
				regexp.MustCompile(`(?i)^medications?\b`),
				regexp.MustCompile(`(?i)^education\b`),
				regexp.MustCompile(`(?i)^caregiver\b`),
				regexp.MustCompile(`(?i)^home care\b`),
				regexp.MustCompile(`(?i)^community supports?\b`),
			},
		},
	}
}

// Phases converts the taxonomy to its consumer-facing representation.
func (t Taxonomy) Phases() []note.Phase {
	out := make([]note.Phase, 0, len(t))
	for _, p := range t {
		out = append(out, note.Phase{Key: p.Key, Label: p.Label, Order: p.Order})
	}
	return out
}

// Definition returns the definition for a phase key, or nil when unknown.
func (t Taxonomy) Definition(key note.PhaseKey) *PhaseDefinition {
	for i := range t {
		if t[i].Key == key {
			return &t[i]
		}
	}
	return nil
}
