package risktrend

import (
	"math"

	"github.com/turtacn/CarePath-Insight/internal/intelligence/common"
	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// nearDischargeFraction is the tail share of the stay over which risk scores
// are capped regardless of keyword severity.
const nearDischargeFraction = 0.85

// nearDischargeCap is the ceiling applied within the near-discharge window.
const nearDischargeCap = 0.5

// Extractor produces the day-by-day risk grid for a raw note.
type Extractor struct {
	rules   []DomainRules
	metrics common.NoteMetrics
}

// NewExtractor constructs an Extractor.  Passing nil rules or metrics
// selects the canonical tables and a noop recorder.
func NewExtractor(rules []DomainRules, metrics common.NoteMetrics) *Extractor {
	if rules == nil {
		rules = Rules()
	}
	if metrics == nil {
		metrics = common.NewNoopMetrics()
	}
	return &Extractor{rules: rules, metrics: metrics}
}

// ExtractGrid scans rawNote and returns one GridRow per day between the
// admission and discharge dates inclusive.  Missing or unparsable date
// anchors yield an empty slice, never an error.
//
// The discharge day is always forced to zero risk in every domain; days in
// the final ~15% of the stay are capped near zero.
func (e *Extractor) ExtractGrid(rawNote string) []note.GridRow {
	admission, discharge, ok := common.ParseStayRange(rawNote)
	if !ok {
		return []note.GridRow{}
	}

	days := common.EnumerateDays(admission, discharge)
	e.metrics.ObserveGridSize("risk", len(days))
	if len(days) == 0 {
		return []note.GridRow{}
	}

	excerpts := common.NewExcerpts(rawNote)

	bands := make(map[note.Domain]Band, len(e.rules))
	for _, dr := range e.rules {
		bands[dr.Domain] = resolveBand(dr, excerpts)
	}

	grid := make([]note.GridRow, 0, len(days))
	total := len(days)
	for i, day := range days {
		row := note.GridRow{Date: day}
		progress := invertedProgress(i, total)
		for _, dr := range e.rules {
			band := bands[dr.Domain]
			score := band.Low + (band.High-band.Low)*progress
			score = applyDischargeOverride(score, i, total)
			row.Set(dr.Domain, clampRound1(score))
		}
		grid = append(grid, row)
	}
	return grid
}

func resolveBand(dr DomainRules, excerpts common.Excerpts) Band {
	for _, band := range dr.Bands {
		if excerpts.ContainsAny(band.Scope, band.Keywords) {
			return band
		}
	}
	return dr.Fallback
}

// invertedProgress is 1 on admission and 0 on discharge: risk starts high
// and is driven toward zero over the stay.
func invertedProgress(i, total int) float64 {
	if total <= 1 {
		return 0
	}
	return float64(total-1-i) / float64(total-1)
}

// applyDischargeOverride forces the discharge-day score to zero and caps
// near-discharge days, regardless of keyword severity.
func applyDischargeOverride(score float64, i, total int) float64 {
	if i == total-1 {
		return 0
	}
	if total > 1 && float64(i) >= nearDischargeFraction*float64(total-1) {
		return math.Min(score, nearDischargeCap)
	}
	return score
}

// clampRound1 rounds to one decimal and clamps into [0,3].
func clampRound1(score float64) float64 {
	rounded := math.Round(score*10) / 10
	if rounded < 0 {
		return 0
	}
	if rounded > 3 {
		return 3
	}
	return rounded
}
