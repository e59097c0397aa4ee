package sectionizer

import (
	"strings"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// selfReferentialBullet is the parsing artifact produced when a bare
// "Discharge Plan" header becomes a label-only row.  It carries no clinical
// content and is discounted from the discharge phase weight.
const selfReferentialBullet = "Discharge Plan: Discharge Plan"

// ComputeEvents converts merged sections into per-phase event weights.
//
// Weight policy:
//   - patient_info: always 0.
//   - back_home: count, minus 1 when the section has a medication bullet and
//     includeMeds is false.  Running ComputeEvents twice (includeMeds
//     false/true) yields the baseline and with-meds series that consumers
//     compare to visualize medication-driven load.
//   - discharge: count, minus 1 when the content contains the
//     self-referential header bullet.
//   - all other phases: count unmodified.
//
// Weights are clamped to ≥ 0.  TS is phase order × 1000, a coarse ordinal
// that consumers may override visually; only its ordering is contractual.
func ComputeEvents(taxonomy Taxonomy, sections []note.MergedSection, includeMeds bool) []note.Event {
	if len(taxonomy) == 0 {
		taxonomy = DefaultTaxonomy()
	}

	out := make([]note.Event, 0, len(sections))
	for _, sec := range sections {
		def := taxonomy.Definition(sec.Phase)
		if def == nil {
			continue
		}

		value := float64(sec.Count)
		switch sec.Phase {
		case note.PhasePatientInfo:
			value = 0
		case note.PhaseBackHome:
			if sec.HasMeds && !includeMeds {
				value--
			}
		case note.PhaseDischarge:
			if strings.Contains(sec.Content, selfReferentialBullet) {
				value--
			}
		}
		if value < 0 {
			value = 0
		}

		out = append(out, note.Event{
			ID:         "evt-" + string(sec.Phase),
			Phase:      sec.Phase,
			PhaseLabel: def.Label,
			Text:       sec.Content,
			Value:      value,
			TS:         int64(def.Order) * 1000,
		})
	}
	return out
}
