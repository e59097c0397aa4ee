package risktrend

import (
	"math"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// Composite weights over the risk grid domains.  Education and SocialSupport
// are deliberately excluded: the composite tracks clinical acuity, not
// logistics.
const (
	weightMobility         = 0.30
	weightWoundCare        = 0.25
	weightMedicalStability = 0.30
	weightSwallowing       = 0.15
)

// CompositeTrend derives the weighted composite risk score and its
// day-over-day delta from a risk grid.  The first day's delta is zero.
// It is a pure function of the grid rows and imposes no extra clamping:
// the inputs are already bounded in [0,3].
func CompositeTrend(grid []note.GridRow) []note.CompositePoint {
	out := make([]note.CompositePoint, 0, len(grid))
	prev := 0.0
	for i, row := range grid {
		score := weightMobility*row.Mobility +
			weightWoundCare*row.WoundCare +
			weightMedicalStability*row.MedicalStability +
			weightSwallowing*row.Swallowing
		score = math.Round(score*100) / 100

		delta := 0.0
		if i > 0 {
			delta = math.Round((score-prev)*100) / 100
		}

		out = append(out, note.CompositePoint{Date: row.Date, Score: score, Delta: delta})
		prev = score
	}
	return out
}
