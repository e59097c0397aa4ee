package sectionizer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

func TestClassify_DefaultTaxonomy(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		line string
		want note.PhaseKey
	}{
		{"Patient Name: J. Doe", note.PhasePatientInfo},
		{"Age/Gender: 70/M", note.PhasePatientInfo},
		{"Admission Date: 5/4", note.PhasePatientInfo},
		{"Discharge Date: 5/11", note.PhasePatientInfo},
		{"Discharge Disposition: home with supports", note.PhasePatientInfo},
		{"Comorbidities: diabetes, CHF", note.PhaseHome},
		{"Past Medical History: COPD", note.PhaseHome},
		{"Hospital Course: admitted via ED", note.PhaseER},
		{"Presenting Complaint: shortness of breath", note.PhaseER},
		{"Hospital Management: IV antibiotics", note.PhaseUnit},
		{"Consults: geriatrics", note.PhaseUnit},
		{"Discharge Plan: PT to continue", note.PhaseDischarge},
		{"Follow-Up Arrangements: clinic in 2 weeks", note.PhaseBackHome},
		{"Medications: Lisinopril", note.PhaseBackHome},
		{"Education: inhaler technique reviewed", note.PhaseBackHome},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.line), "line %q", tt.line)
	}
}

func TestClassify_Fallbacks(t *testing.T) {
	c := NewClassifier(nil)

	// Lines matching no rule but mentioning Hospital Management land in unit.
	assert.Equal(t, note.PhaseUnit, c.Classify("continued per hospital management section"))

	// Everything else defaults to home.
	assert.Equal(t, note.PhaseHome, c.Classify("Vitamin D supplementation"))
	assert.Equal(t, note.PhaseHome, c.Classify(""))
}

// A line matching rules from two phases must resolve to the phase declared
// earlier in the taxonomy, regardless of rule position within each phase.
func TestClassify_FirstDeclaredPhaseWins(t *testing.T) {
	taxonomy := Taxonomy{
		{
			Key:   note.PhaseER,
			Label: "ER",
			Order: 1,
			Rules: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^zzz never matches`),
				// Declared second within the phase, but the phase itself is
				// declared first.
				regexp.MustCompile(`(?i)^transfer note`),
			},
		},
		{
			Key:   note.PhaseUnit,
			Label: "Hospital Unit",
			Order: 2,
			Rules: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^transfer note`),
			},
		},
	}
	c := NewClassifier(taxonomy)
	assert.Equal(t, note.PhaseER, c.Classify("Transfer Note: to ward 5B"))
}

func TestDefaultTaxonomy_OrderIsStable(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	wantKeys := []note.PhaseKey{
		note.PhasePatientInfo, note.PhaseHome, note.PhaseER,
		note.PhaseUnit, note.PhaseDischarge, note.PhaseBackHome,
	}
	for i, p := range taxonomy {
		assert.Equal(t, wantKeys[i], p.Key)
	}
	assert.Equal(t, -1, taxonomy.Definition(note.PhasePatientInfo).Order)
	assert.Equal(t, 4, taxonomy.Definition(note.PhaseBackHome).Order)
	assert.Nil(t, taxonomy.Definition(note.PhaseKey("nonexistent")))
}
