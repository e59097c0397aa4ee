package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

const fullNote = `Patient Name: Jordan Reyes
Age / Gender: 72 / F
Admission Date: 5/4
Discharge Date: 5/11
Discharge Disposition: Home with home care
Most Responsible Diagnosis
- Community-acquired pneumonia
Past Medical History: COPD, hypertension
Home Medications: salbutamol, ramipril
Hospital Course: admitted with pneumonia, brief ICU stay
Hospital Management:
Antibiotics: IV ceftriaxone stepped down to oral
Oxygen: weaned to room air
Physiotherapy: walker at discharge
Discharge Plan
Mobility: independent with walker
Wound care: none required
Medication assistance: blister pack arranged
Follow-Up: Family physician - within 1 week
Medications: amoxicillin, pantoprazole
Education: inhaler technique reviewed
`

func TestPipelineRun_FullNote(t *testing.T) {
	result := NewPipeline(nil).Run(fullNote)

	// Phase taxonomy is always included, in timeline order.
	require.Len(t, result.Phases, 6)
	assert.Equal(t, notetypes.PhasePatientInfo, result.Phases[0].Key)
	assert.Equal(t, notetypes.PhaseBackHome, result.Phases[5].Key)

	// Every populated phase produced a merged section.
	phases := map[notetypes.PhaseKey]notetypes.MergedSection{}
	for _, s := range result.Sections {
		phases[s.Phase] = s
	}
	assert.Contains(t, phases, notetypes.PhasePatientInfo)
	assert.Contains(t, phases, notetypes.PhaseHome)
	assert.Contains(t, phases, notetypes.PhaseER)
	assert.Contains(t, phases, notetypes.PhaseUnit)
	assert.Contains(t, phases, notetypes.PhaseDischarge)
	assert.Contains(t, phases, notetypes.PhaseBackHome)

	// The discharge-plan keyword lines were pulled into the discharge phase
	// even though their labels alone would classify elsewhere.
	assert.Contains(t, phases[notetypes.PhaseDischarge].Content, "Mobility: independent with walker")
	assert.Contains(t, phases[notetypes.PhaseDischarge].Content, "Wound care: none required")

	// Management absorption folded the treatment lines into one row.
	assert.Contains(t, phases[notetypes.PhaseUnit].Content, "IV ceftriaxone")
	assert.Contains(t, phases[notetypes.PhaseUnit].Content, "weaned to room air")

	// Grids cover the 5/4..5/11 stay inclusively.
	require.Len(t, result.ReadinessGrid, 8)
	require.Len(t, result.RiskGrid, 8)
	require.Len(t, result.RiskComposite, 8)
	assert.Equal(t, "5/4", result.ReadinessGrid[0].Date)
	assert.Equal(t, "5/11", result.ReadinessGrid[7].Date)

	// Risk ends at zero on the discharge day, so the composite does too.
	assert.Equal(t, 0.0, result.RiskComposite[7].Score)

	// Logistics captured the demographic header.
	assert.Equal(t, "Jordan Reyes", result.Logistics.Patient.Name)
	assert.Equal(t, "5/4", result.Logistics.Patient.AdmissionDate)
	require.Len(t, result.Logistics.FollowUps, 1)
	assert.Equal(t, "Family physician", result.Logistics.FollowUps[0].Provider)

	assert.False(t, result.AnalyzedAt.Time().IsZero())
}

func TestPipelineRun_EventsVariantsDifferOnlyInBackHome(t *testing.T) {
	result := NewPipeline(nil).Run(fullNote)

	require.Equal(t, len(result.Events), len(result.EventsWithMeds))
	for i := range result.Events {
		without, with := result.Events[i], result.EventsWithMeds[i]
		assert.Equal(t, without.Phase, with.Phase)
		if without.Phase == notetypes.PhaseBackHome {
			assert.Equal(t, without.Value+1, with.Value,
				"medication bullet counts only in the with-meds variant")
		} else {
			assert.Equal(t, without.Value, with.Value)
		}
	}
}

func TestPipelineRun_EmptyNote(t *testing.T) {
	result := NewPipeline(nil).Run("")

	require.NotNil(t, result)
	assert.Len(t, result.Phases, 6)
	assert.Empty(t, result.Sections)
	assert.Empty(t, result.Events)
	assert.Empty(t, result.ReadinessGrid)
	assert.Empty(t, result.RiskGrid)
	assert.Empty(t, result.RiskComposite)
}

func TestPipelineRun_InlineDischargeHeaderRoundTrip(t *testing.T) {
	// A discharge header carrying inline content re-processes the remainder
	// as its own line, so the keyword override still applies to it.
	raw := "Admission Date: 5/4\nDischarge Date: 5/5\n" +
		"Discharge Plan: Mobility: independent with walker\n"
	result := NewPipeline(nil).Run(raw)

	var discharge *notetypes.MergedSection
	for i := range result.Sections {
		if result.Sections[i].Phase == notetypes.PhaseDischarge {
			discharge = &result.Sections[i]
		}
	}
	require.NotNil(t, discharge)
	assert.True(t, strings.Contains(discharge.Content, "Mobility: independent with walker"))
}
