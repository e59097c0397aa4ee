package risktrend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

const severeMobilityNote = "Admission Date: 5/4\nDischarge Date: 5/11\n" +
	"Hospital Course: patient bedbound, unsafe for ambulation\n"

func TestExtractGrid_SevereMobilityTrajectory(t *testing.T) {
	grid := NewExtractor(nil, nil).ExtractGrid(severeMobilityNote)

	require.Len(t, grid, 8)
	// Severe band ceiling on admission, forced zero on discharge.
	assert.Equal(t, 2.0, grid[0].Mobility)
	assert.Equal(t, 0.0, grid[7].Mobility)

	// Risk decays monotonically over the stay.
	for i := 1; i < len(grid); i++ {
		assert.LessOrEqual(t, grid[i].Mobility, grid[i-1].Mobility,
			"day %d should not exceed day %d", i, i-1)
	}
}

func TestExtractGrid_DischargeDayForcedToZero(t *testing.T) {
	grid := NewExtractor(nil, nil).ExtractGrid(severeMobilityNote)

	require.NotEmpty(t, grid)
	last := grid[len(grid)-1]
	for _, d := range note.Domains {
		assert.Equal(t, 0.0, last.Get(d), "discharge-day %s", d)
	}
}

func TestExtractGrid_NearDischargeCap(t *testing.T) {
	// The canonical bands all interpolate down from zero, so force a constant
	// severe score to make the tail cap observable.
	rules := []DomainRules{{
		Domain:   note.DomainMobility,
		Fallback: Band{Low: 2, High: 2},
	}}
	raw := "Admission Date: 5/4\nDischarge Date: 5/11\n"
	grid := NewExtractor(rules, nil).ExtractGrid(raw)

	require.Len(t, grid, 8)
	// total-1 = 7; the cap window starts at i >= 5.95, i.e. day 6 only.
	for i := 0; i < 6; i++ {
		assert.Equal(t, 2.0, grid[i].Mobility, "day %d", i)
	}
	assert.Equal(t, 0.5, grid[6].Mobility)
	assert.Equal(t, 0.0, grid[7].Mobility)
}

func TestExtractGrid_MissingAnchorsYieldEmpty(t *testing.T) {
	e := NewExtractor(nil, nil)
	assert.Empty(t, e.ExtractGrid(""))
	assert.Empty(t, e.ExtractGrid("Discharge Date: 5/11\nno admission anchor"))
}

func TestExtractGrid_SingleDayStayIsAllZero(t *testing.T) {
	raw := "Admission Date: 5/4\nDischarge Date: 5/4\nHospital Course: unstable, ICU\n"
	grid := NewExtractor(nil, nil).ExtractGrid(raw)

	require.Len(t, grid, 1)
	for _, d := range note.Domains {
		assert.Equal(t, 0.0, grid[0].Get(d))
	}
}

func TestExtractGrid_OneDecimalPrecision(t *testing.T) {
	grid := NewExtractor(nil, nil).ExtractGrid(severeMobilityNote)

	require.NotEmpty(t, grid)
	for _, row := range grid {
		for _, d := range note.Domains {
			v := row.Get(d)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 3.0)
			assert.InDelta(t, v, float64(int(v*10+0.5))/10, 1e-9,
				"scores carry at most one decimal")
		}
	}
}

func TestRules_CoverAllDomains(t *testing.T) {
	seen := map[note.Domain]bool{}
	for _, dr := range Rules() {
		seen[dr.Domain] = true
		for _, b := range dr.Bands {
			assert.NotEmpty(t, b.Keywords)
			assert.LessOrEqual(t, b.Low, b.High)
			assert.LessOrEqual(t, b.High, 3.0)
		}
	}
	for _, d := range note.Domains {
		assert.True(t, seen[d], "missing rules for %s", d)
	}
}
