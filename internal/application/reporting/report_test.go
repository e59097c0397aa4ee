package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CarePath-Insight/pkg/types/common"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

func resultFixture() *notetypes.AnalysisResult {
	return &notetypes.AnalysisResult{
		Events: []notetypes.Event{
			{Phase: notetypes.PhaseUnit, PhaseLabel: "Hospital Stay", Value: 3},
			{Phase: notetypes.PhaseDischarge, PhaseLabel: "Discharge Planning", Value: 2},
		},
		Sections: []notetypes.MergedSection{
			{Phase: notetypes.PhaseUnit, Label: "Hospital Stay",
				Content: "• Antibiotics: IV ceftriaxone", Count: 1},
		},
		ReadinessGrid: []notetypes.GridRow{
			{Date: "5/4", Mobility: 1, MedicalStability: 2},
		},
		RiskComposite: []notetypes.CompositePoint{
			{Date: "5/4", Score: 1.5, Delta: 0},
		},
		Logistics: notetypes.LogisticsSummary{
			Patient: notetypes.PatientInfo{
				Name: "Jordan Reyes", Age: "72", Gender: "F",
				AdmissionDate: "5/4", DischargeDate: "5/11",
				Disposition: "Home with home care",
			},
			Medications: []string{"amoxicillin", "pantoprazole"},
			Education:   []string{"inhaler technique"},
			FollowUps:   []notetypes.FollowUp{{Provider: "Family physician", Detail: "within 1 week"}},
			Caregiver:   "spouse at home",
		},
		AnalyzedAt: common.Timestamp(time.Date(2026, 5, 11, 10, 0, 0, 0, time.UTC)),
	}
}

func TestRender_Markdown(t *testing.T) {
	out, err := MustNewRenderer().Render(resultFixture(), FormatMarkdown)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "# Discharge Note Analysis")
	assert.Contains(t, s, "Jordan Reyes")
	assert.Contains(t, s, "5/4 – 5/11")
	assert.Contains(t, s, "**Hospital Stay** (weight 3.0)")
	assert.Contains(t, s, "• Antibiotics: IV ceftriaxone")
	assert.Contains(t, s, "| 5/4 | 1.0 |")
	assert.Contains(t, s, "amoxicillin, pantoprazole")
	assert.Contains(t, s, "Family physician")
}

func TestRender_Text(t *testing.T) {
	out, err := MustNewRenderer().Render(resultFixture(), FormatText)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "DISCHARGE NOTE ANALYSIS")
	assert.Contains(t, s, "Hospital Stay: weight 3.0")
	assert.Contains(t, s, "  • Antibiotics: IV ceftriaxone")
	assert.Contains(t, s, "Follow-up:   Family physician (within 1 week)")
}

func TestRender_DefaultsToMarkdown(t *testing.T) {
	out, err := MustNewRenderer().Render(resultFixture(), "")
	require.NoError(t, err)
	assert.Contains(t, string(out), "# Discharge Note Analysis")
}

func TestRender_EmptyResultStillRenders(t *testing.T) {
	out, err := MustNewRenderer().Render(&notetypes.AnalysisResult{}, FormatMarkdown)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "unknown")
	assert.Contains(t, s, "No stay dates found")
	assert.Contains(t, s, "none recorded")
}

func TestRender_Errors(t *testing.T) {
	r := MustNewRenderer()

	_, err := r.Render(nil, FormatMarkdown)
	assert.Error(t, err)

	_, err = r.Render(resultFixture(), "pdf")
	assert.Error(t, err)
}
