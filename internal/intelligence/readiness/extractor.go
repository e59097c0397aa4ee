package readiness

import (
	"math"

	"github.com/turtacn/CarePath-Insight/internal/intelligence/common"
	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// Extractor produces the day-by-day readiness grid for a raw note.
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
// admission and discharge dates inclusive, date-ordered ascending.  When
// either date anchor is absent or unparsable the result is empty; callers
// treat that as "no data available", never as an error.
func (e *Extractor) ExtractGrid(rawNote string) []note.GridRow {
	admission, discharge, ok := common.ParseStayRange(rawNote)
	if !ok {
		return []note.GridRow{}
	}

	days := common.EnumerateDays(admission, discharge)
	e.metrics.ObserveGridSize("readiness", len(days))
	if len(days) == 0 {
		return []note.GridRow{}
	}

	excerpts := common.NewExcerpts(rawNote)

	// Each domain resolves its band once per note; only the progress term
	// varies per day.
	bands := make(map[note.Domain]Band, len(e.rules))
	for _, dr := range e.rules {
		bands[dr.Domain] = resolveBand(dr, excerpts)
	}

	grid := make([]note.GridRow, 0, len(days))
	for i, day := range days {
		row := note.GridRow{Date: day}
		progress := dayProgress(i, len(days))
		for _, dr := range e.rules {
			band := bands[dr.Domain]
			score := band.Low + (band.High-band.Low)*progress
			row.Set(dr.Domain, clampRound(score))
		}
		grid = append(grid, row)
	}
	return grid
}

// resolveBand returns the first band of dr whose keywords occur in their
// scoped excerpt, or the fallback band when none match.
func resolveBand(dr DomainRules, excerpts common.Excerpts) Band {
	for _, band := range dr.Bands {
		if excerpts.ContainsAny(band.Scope, band.Keywords) {
			return band
		}
	}
	return dr.Fallback
}

// dayProgress is the normalized position of day i in a stay of total days:
// 0 on admission, 1 on discharge.  Single-day stays count as fully
// progressed.
func dayProgress(i, total int) float64 {
	if total <= 1 {
		return 1
	}
	return float64(i) / float64(total-1)
}

// clampRound rounds to the nearest integer and clamps into [0,3].
func clampRound(score float64) float64 {
	rounded := math.Round(score)
	if rounded < 0 {
		return 0
	}
	if rounded > 3 {
		return 3
	}
	return rounded
}
