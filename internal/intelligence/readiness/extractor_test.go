package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

func TestExtractGrid_DateCoverage(t *testing.T) {
	raw := "Admission Date: 5/4\nDischarge Date: 5/11\nHospital Course: stable\n"
	grid := NewExtractor(nil, nil).ExtractGrid(raw)

	require.Len(t, grid, 8)
	want := []string{"5/4", "5/5", "5/6", "5/7", "5/8", "5/9", "5/10", "5/11"}
	for i, row := range grid {
		assert.Equal(t, want[i], row.Date)
	}
}

func TestExtractGrid_MissingAnchorsYieldEmpty(t *testing.T) {
	e := NewExtractor(nil, nil)
	assert.Empty(t, e.ExtractGrid(""))
	assert.Empty(t, e.ExtractGrid("Admission Date: 5/4\nno discharge anchor"))
	assert.Empty(t, e.ExtractGrid("Hospital Course: stable"))
}

func TestExtractGrid_ScoresBoundedAndIntegral(t *testing.T) {
	raw := "Admission Date: 5/4\nDischarge Date: 5/11\n" +
		"Hospital Course: brief ICU stay, intubated\n" +
		"Hospital Management: IV antibiotics, oxygen\n" +
		"Discharge Plan: bedbound, wound vac, NPO, lives alone, education not started\n"
	grid := NewExtractor(nil, nil).ExtractGrid(raw)

	require.NotEmpty(t, grid)
	for _, row := range grid {
		for _, d := range note.Domains {
			v := row.Get(d)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 3.0)
			assert.Equal(t, float64(int(v)), v, "readiness scores are whole numbers")
		}
	}
}

func TestExtractGrid_ReadinessImprovesTowardDischarge(t *testing.T) {
	raw := "Admission Date: 5/4\nDischarge Date: 5/11\n" +
		"Hospital Management: patient bedbound, total assist for transfers\n"
	grid := NewExtractor(nil, nil).ExtractGrid(raw)

	require.Len(t, grid, 8)
	assert.LessOrEqual(t, grid[0].Mobility, grid[7].Mobility)
	// Severe mobility tier: 0 on admission, band ceiling by discharge.
	assert.Equal(t, 0.0, grid[0].Mobility)
	assert.Equal(t, 2.0, grid[7].Mobility)
}

func TestExtractGrid_SevereTierOutranksRecoveryTier(t *testing.T) {
	// Both "bedbound" (severe) and "steady gait" (recovered) present: the
	// table is ordered, so the severe band wins.
	raw := "Admission Date: 5/4\nDischarge Date: 5/11\n" +
		"Hospital Course: bedbound on arrival, now steady gait\n"
	grid := NewExtractor(nil, nil).ExtractGrid(raw)

	require.Len(t, grid, 8)
	assert.Equal(t, 0.0, grid[0].Mobility)
	assert.Equal(t, 2.0, grid[7].Mobility, "severe band ceiling is 1.5, rounded on the last day")
}

func TestExtractGrid_FallbackWhenNoKeywordsMatch(t *testing.T) {
	// No mobility vocabulary at all: the generic linear fallback applies.
	raw := "Admission Date: 5/4\nDischarge Date: 5/11\nChief note: uneventful stay\n"
	grid := NewExtractor(nil, nil).ExtractGrid(raw)

	require.Len(t, grid, 8)
	// Fallback band 0.5..2.5, rounded half away from zero at the endpoints.
	assert.Equal(t, 1.0, grid[0].Mobility)
	assert.Equal(t, 3.0, grid[7].Mobility)
}

func TestExtractGrid_SingleDayStayIsFullyProgressed(t *testing.T) {
	raw := "Admission Date: 5/4\nDischarge Date: 5/4\nHospital Course: stable\n"
	grid := NewExtractor(nil, nil).ExtractGrid(raw)

	require.Len(t, grid, 1)
	assert.Equal(t, 3.0, grid[0].MedicalStability, "stable tier ceiling on a same-day discharge")
}

func TestRules_CoverAllDomains(t *testing.T) {
	seen := map[note.Domain]bool{}
	for _, dr := range Rules() {
		seen[dr.Domain] = true
		assert.NotEmpty(t, dr.Bands, "domain %s", dr.Domain)
		assert.LessOrEqual(t, dr.Fallback.Low, dr.Fallback.High)
		for _, b := range dr.Bands {
			assert.NotEmpty(t, b.Keywords)
			assert.LessOrEqual(t, b.Low, b.High)
			assert.GreaterOrEqual(t, b.Low, 0.0)
			assert.LessOrEqual(t, b.High, 3.0)
		}
	}
	for _, d := range note.Domains {
		assert.True(t, seen[d], "missing rules for %s", d)
	}
}
