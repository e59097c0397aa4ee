// Package readiness scores discharge preparedness per clinical domain on a
// 0–3 scale (0 = not ready, 3 = fully ready), one row per day of stay.
//
// The scoring model is a hand-tuned keyword heuristic, not a validated
// clinical instrument: each domain carries an ordered table of keyword bands;
// the first band whose keywords appear in its scoped excerpt selects an
// interpolation range, and the day's score is interpolated within that range
// proportional to stay progress; readiness generally improves toward
// discharge.  When no band matches, the domain degrades to its keywordless
// fallback band, a generic linear progression retained as the heuristic of
// last resort.
package readiness

import (
	"github.com/turtacn/CarePath-Insight/internal/intelligence/common"
	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// Band selects a score interpolation range when any of its keywords occurs
// in the scoped excerpt.  Score = Low + (High-Low) × progress.
type Band struct {
	Scope    common.Scope
	Keywords []string
	Low      float64
	High     float64
}

// DomainRules is the ordered decision table for one clinical domain.
// Bands are evaluated top to bottom; the first match wins.
type DomainRules struct {
	Domain note.Domain
	Bands  []Band
	// Fallback applies when no band matches.  Keywordless by definition.
	Fallback Band
}

// Rules returns the per-domain readiness decision tables.  Keyword lists and
// band bounds are part of the pipeline's intended behavior; change them only
// deliberately, with test updates.
func Rules() []DomainRules {
	return []DomainRules{
		{
			Domain: note.DomainMobility,
			Bands: []Band{
				{Scope: common.ScopeFull, Keywords: []string{
					"bedbound", "non-ambulatory", "unsafe for ambulation",
					"unable to ambulate", "total assist",
				}, Low: 0, High: 1.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"walker", "gait aid", "wheelchair", "2-person assist",
					"one-person assist", "physiotherapy", "pt assessment",
				}, Low: 0.5, High: 2.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"independent with", "ambulating independently", "steady gait",
				}, Low: 1.5, High: 3},
			},
			Fallback: Band{Low: 0.5, High: 2.5},
		},
		{
			Domain: note.DomainWoundCare,
			Bands: []Band{
				{Scope: common.ScopeFull, Keywords: []string{
					"wound vac", "dehiscence", "infected wound", "necrotic",
					"stage 3", "stage 4",
				}, Low: 0, High: 1.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"dressing change", "wound care", "pressure injury",
					"stage 2", "incision",
				}, Low: 0.5, High: 2.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"wound healing well", "incision clean", "no drainage",
				}, Low: 2, High: 3},
			},
			Fallback: Band{Low: 1, High: 3},
		},
		{
			Domain: note.DomainMedicalStability,
			Bands: []Band{
				{Scope: common.ScopeCourse, Keywords: []string{
					"icu", "intubated", "pressors", "unstable", "critical",
				}, Low: 0, High: 1.5},
				{Scope: common.ScopeManagement, Keywords: []string{
					"iv antibiotics", "oxygen", "telemetry", "fever", "delirium",
				}, Low: 0.5, High: 2.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"stable", "afebrile", "vitals within normal",
				}, Low: 1.5, High: 3},
			},
			Fallback: Band{Low: 1, High: 3},
		},
		{
			Domain: note.DomainSwallowing,
			Bands: []Band{
				{Scope: common.ScopeFull, Keywords: []string{
					"npo", "aspiration", "tube feed", "peg tube",
				}, Low: 0, High: 1.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"thickened fluids", "pureed", "minced", "dysphagia",
					"swallowing assessment", "speech language",
				}, Low: 0.5, High: 2.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"regular diet", "tolerating diet", "no swallowing concerns",
				}, Low: 2, High: 3},
			},
			Fallback: Band{Low: 1.5, High: 3},
		},
		{
			Domain: note.DomainEducation,
			Bands: []Band{
				{Scope: common.ScopeDischargePlan, Keywords: []string{
					"education not started", "declines teaching",
					"low health literacy",
				}, Low: 0, High: 1.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"education", "teaching", "teach-back", "instructed",
				}, Low: 1, High: 3},
			},
			Fallback: Band{Low: 0.5, High: 2.5},
		},
		{
			Domain: note.DomainSocialSupport,
			Bands: []Band{
				{Scope: common.ScopeFull, Keywords: []string{
					"lives alone", "no caregiver", "homeless",
					"no fixed address", "social isolation",
				}, Low: 0, High: 1.5},
				{Scope: common.ScopeFull, Keywords: []string{
					"social work", "caregiver", "family meeting",
					"home care", "community supports",
				}, Low: 1, High: 3},
			},
			Fallback: Band{Low: 1, High: 2.5},
		},
	}
}
