package risktrend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

func TestCompositeTrend_WeightedSum(t *testing.T) {
	grid := []note.GridRow{
		{Date: "5/4", Mobility: 2, WoundCare: 1, MedicalStability: 3, Swallowing: 0},
	}
	points := CompositeTrend(grid)

	require.Len(t, points, 1)
	// 0.30*2 + 0.25*1 + 0.30*3 + 0.15*0 = 1.75
	assert.Equal(t, 1.75, points[0].Score)
	assert.Equal(t, 0.0, points[0].Delta)
	assert.Equal(t, "5/4", points[0].Date)
}

func TestCompositeTrend_DeltaIsDayOverDay(t *testing.T) {
	grid := []note.GridRow{
		{Date: "5/4", Mobility: 2, WoundCare: 2, MedicalStability: 2, Swallowing: 2},
		{Date: "5/5", Mobility: 1, WoundCare: 1, MedicalStability: 1, Swallowing: 1},
		{Date: "5/6"},
	}
	points := CompositeTrend(grid)

	require.Len(t, points, 3)
	assert.Equal(t, 2.0, points[0].Score)
	assert.Equal(t, 0.0, points[0].Delta)
	assert.Equal(t, 1.0, points[1].Score)
	assert.Equal(t, -1.0, points[1].Delta)
	assert.Equal(t, 0.0, points[2].Score)
	assert.Equal(t, -1.0, points[2].Delta)
}

func TestCompositeTrend_IgnoresEducationAndSocialSupport(t *testing.T) {
	grid := []note.GridRow{
		{Date: "5/4", Education: 3, SocialSupport: 3},
	}
	points := CompositeTrend(grid)

	require.Len(t, points, 1)
	assert.Equal(t, 0.0, points[0].Score)
}

func TestCompositeTrend_RoundsToTwoDecimals(t *testing.T) {
	grid := []note.GridRow{
		{Date: "5/4", Mobility: 0.3, WoundCare: 0.3, MedicalStability: 0.3, Swallowing: 0.3},
	}
	points := CompositeTrend(grid)

	require.Len(t, points, 1)
	// Full weight sum 1.0 times 0.3.
	assert.Equal(t, 0.3, points[0].Score)
}

func TestCompositeTrend_EmptyGrid(t *testing.T) {
	assert.Empty(t, CompositeTrend(nil))
	assert.Empty(t, CompositeTrend([]note.GridRow{}))
}
