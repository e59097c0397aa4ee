package sectionizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

func sectionsFixture() []note.MergedSection {
	return []note.MergedSection{
		{ID: "sec-patient_info", Phase: note.PhasePatientInfo, Count: 0,
			Content: "• Patient Name: J. Doe"},
		{ID: "sec-home", Phase: note.PhaseHome, Count: 2,
			Content: "• Comorbidities: CHF\n• Social History: lives alone"},
		{ID: "sec-discharge", Phase: note.PhaseDischarge, Count: 3,
			Content: "• Discharge Plan: Discharge Plan\n• Mobility: walker\n• Education: teach-back"},
		{ID: "sec-back_home", Phase: note.PhaseBackHome, Count: 2, HasMeds: true,
			Content: "• Follow-Up Arrangements: clinic\n• Medications: Lisinopril"},
	}
}

func TestComputeEvents_WeightPolicy(t *testing.T) {
	events := ComputeEvents(nil, sectionsFixture(), false)
	require.Len(t, events, 4)

	byPhase := map[note.PhaseKey]note.Event{}
	for _, e := range events {
		byPhase[e.Phase] = e
	}

	assert.Equal(t, 0.0, byPhase[note.PhasePatientInfo].Value)
	assert.Equal(t, 2.0, byPhase[note.PhaseHome].Value)
	// Self-referential header bullet discounted.
	assert.Equal(t, 2.0, byPhase[note.PhaseDischarge].Value)
	// Medication bullet stripped in the baseline view.
	assert.Equal(t, 1.0, byPhase[note.PhaseBackHome].Value)
}

func TestComputeEvents_MedsDeltaProperty(t *testing.T) {
	baseline := ComputeEvents(nil, sectionsFixture(), false)
	withMeds := ComputeEvents(nil, sectionsFixture(), true)
	require.Equal(t, len(baseline), len(withMeds))

	for i := range baseline {
		delta := withMeds[i].Value - baseline[i].Value
		if baseline[i].Phase == note.PhaseBackHome {
			assert.Equal(t, 1.0, delta, "hasMeds back_home delta must be exactly 1")
		} else {
			assert.Equal(t, 0.0, delta)
		}
	}
}

func TestComputeEvents_NonNegativeWeights(t *testing.T) {
	// A back_home section whose only bullet is the medication line would go
	// negative without the clamp.
	sections := []note.MergedSection{
		{ID: "sec-back_home", Phase: note.PhaseBackHome, Count: 1, HasMeds: true,
			Content: "• Medications: Lisinopril"},
		{ID: "sec-discharge", Phase: note.PhaseDischarge, Count: 0,
			Content: "• Discharge Plan: Discharge Plan"},
	}
	for _, includeMeds := range []bool{false, true} {
		for _, e := range ComputeEvents(nil, sections, includeMeds) {
			assert.GreaterOrEqual(t, e.Value, 0.0, "includeMeds=%v phase=%s", includeMeds, e.Phase)
		}
	}
}

func TestComputeEvents_TSOrdersPhases(t *testing.T) {
	events := ComputeEvents(nil, sectionsFixture(), false)

	var prev int64 = -2000
	for _, e := range events {
		assert.Greater(t, e.TS, prev, "phase %s must sort after its predecessor", e.Phase)
		prev = e.TS
	}
	// patient_info sits below the timeline at order -1.
	assert.Equal(t, int64(-1000), events[0].TS)
}

func TestComputeEvents_UnknownPhaseSkipped(t *testing.T) {
	sections := []note.MergedSection{
		{ID: "sec-x", Phase: note.PhaseKey("mystery"), Count: 5},
	}
	assert.Empty(t, ComputeEvents(nil, sections, false))
}
