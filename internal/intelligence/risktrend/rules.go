// Package risktrend scores clinical risk per domain on a 0–3 scale
// (0 = low risk, 3 = high risk), one row per day of stay, and derives the
// composite risk trend consumed by the risk chart.
//
// The model mirrors the readiness tables structurally (ordered keyword
// bands over the same scoped excerpts) but inverts the progress term: risk
// is highest at admission and driven toward zero at discharge.  An explicit
// override forces the discharge-day score to zero and caps scores in the
// final ~15% of the stay, modeling the assumption that discharge implies
// resolved or managed risk regardless of keyword severity.  Keywordless
// fallback bands remain heuristics of last resort, preserved deliberately.
package risktrend

import (
	"github.com/turtacn/CarePath-Insight/internal/intelligence/common"
	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// Band selects a score interpolation range when any of its keywords occurs
// in the scoped excerpt.  Score = Low + (High-Low) × inverted progress.
type Band struct {
	Scope    common.Scope
	Keywords []string
	Low      float64
	High     float64
}

// DomainRules is the ordered decision table for one clinical domain.
type DomainRules struct {
	Domain   note.Domain
	Bands    []Band
	Fallback Band
}

// Rules returns the per-domain risk decision tables.
func Rules() []DomainRules {
	return []DomainRules{
		{
			Domain: note.DomainMobility,
			Bands: []Band{
				{Scope: common.ScopeFull, Keywords: []string{
					"bedbound", "unsafe for ambulation", "non-ambulatory",
					"total assist", "fall",
				}, Low: 0, High: 2},
				{Scope: common.ScopeFull, Keywords: []string{
					"walker", "wheelchair", "assist",
				}, Low: 0, High: 1.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"independent",
				}, Low: 0, High: 0.8},
			},
			Fallback: Band{Low: 0, High: 1.2},
		},
		{
			Domain: note.DomainWoundCare,
			Bands: []Band{
				{Scope: common.ScopeFull, Keywords: []string{
					"wound vac", "dehiscence", "infected wound", "necrotic",
					"stage 3", "stage 4",
				}, Low: 0, High: 2.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"dressing", "wound", "pressure injury", "incision",
				}, Low: 0, High: 1.6},
			},
			Fallback: Band{Low: 0, High: 1},
		},
		{
			Domain: note.DomainMedicalStability,
			Bands: []Band{
				{Scope: common.ScopeCourse, Keywords: []string{
					"icu", "pressors", "intubated", "unstable", "sepsis",
				}, Low: 0, High: 2.8},
				{Scope: common.ScopeManagement, Keywords: []string{
					"iv antibiotics", "oxygen", "fever", "delirium", "telemetry",
				}, Low: 0, High: 1.8},
				{Scope: common.ScopeFull, Keywords: []string{
					"stable", "afebrile",
				}, Low: 0, High: 1},
			},
			Fallback: Band{Low: 0, High: 1.4},
		},
		{
			Domain: note.DomainSwallowing,
			Bands: []Band{
				{Scope: common.ScopeFull, Keywords: []string{
					"aspiration", "npo", "peg tube", "tube feed",
				}, Low: 0, High: 2.4},
				{Scope: common.ScopeFull, Keywords: []string{
					"thickened", "pureed", "minced", "dysphagia",
				}, Low: 0, High: 1.6},
			},
			Fallback: Band{Low: 0, High: 0.9},
		},
		{
			Domain: note.DomainEducation,
			Bands: []Band{
				{Scope: common.ScopeDischargePlan, Keywords: []string{
					"education not started", "declines teaching",
					"low health literacy",
				}, Low: 0, High: 2},
				{Scope: common.ScopeFull, Keywords: []string{
					"education", "teaching",
				}, Low: 0, High: 1.2},
			},
			Fallback: Band{Low: 0, High: 0.8},
		},
		{
			Domain: note.DomainSocialSupport,
			Bands: []Band{
				{Scope: common.ScopeFull, Keywords: []string{
					"lives alone", "no caregiver", "homeless", "social isolation",
				}, Low: 0, High: 2.2},
				{Scope: common.ScopeFull, Keywords: []string{
					"social work", "caregiver", "home care",
				}, Low: 0, High: 1.4},
			},
			Fallback: Band{Low: 0, High: 1},
		},
	}
}
