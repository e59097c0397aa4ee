package sectionizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// MergeSections groups rows by phase into one merged section per phase,
// ordered by phase order.  Phases with zero rows are omitted entirely.
//
// Count is the number of contributing rows except for patient_info, whose
// count is forced to zero: demographics never contribute to timeline
// weighting.  HasMeds is set only on the back_home phase when any row label
// starts with "Medication".
func MergeSections(rows []note.SectionRow, taxonomy Taxonomy) []note.MergedSection {
	if len(taxonomy) == 0 {
		taxonomy = DefaultTaxonomy()
	}

	byPhase := make(map[note.PhaseKey][]note.SectionRow, len(taxonomy))
	for _, row := range rows {
		byPhase[row.Phase] = append(byPhase[row.Phase], row)
	}

	out := make([]note.MergedSection, 0, len(taxonomy))
	for _, phase := range taxonomy {
		phaseRows := byPhase[phase.Key]
		if len(phaseRows) == 0 {
			continue
		}

		bullets := make([]string, 0, len(phaseRows))
		hasMeds := false
		for _, row := range phaseRows {
			bullets = append(bullets, fmt.Sprintf("• %s: %s", row.Label, row.Content))
			if phase.Key == note.PhaseBackHome && strings.HasPrefix(row.Label, "Medication") {
				hasMeds = true
			}
		}

		count := len(phaseRows)
		if phase.Key == note.PhasePatientInfo {
			count = 0
		}

		out = append(out, note.MergedSection{
			ID:      "sec-" + string(phase.Key),
			Phase:   phase.Key,
			Label:   phase.Label,
			Content: strings.Join(bullets, "\n"),
			Count:   count,
			HasMeds: hasMeds,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return phaseOrder(taxonomy, out[i].Phase) < phaseOrder(taxonomy, out[j].Phase)
	})
	return out
}

func phaseOrder(taxonomy Taxonomy, key note.PhaseKey) int {
	if def := taxonomy.Definition(key); def != nil {
		return def.Order
	}
	return 0
}
