package sectionizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

func TestMergeSections_GroupsByPhaseInOrder(t *testing.T) {
	rows := []note.SectionRow{
		{ID: "row-0", Phase: note.PhaseBackHome, Label: "Medications", Content: "Lisinopril"},
		{ID: "row-1", Phase: note.PhaseHome, Label: "Comorbidities", Content: "diabetes"},
		{ID: "row-2", Phase: note.PhaseBackHome, Label: "Follow-Up Arrangements", Content: "PT clinic"},
	}
	sections := MergeSections(rows, nil)

	require.Len(t, sections, 2)
	assert.Equal(t, note.PhaseHome, sections[0].Phase)
	assert.Equal(t, note.PhaseBackHome, sections[1].Phase)
	assert.Equal(t, "• Medications: Lisinopril\n• Follow-Up Arrangements: PT clinic", sections[1].Content)
	assert.Equal(t, 2, sections[1].Count)
	assert.True(t, sections[1].HasMeds)
}

func TestMergeSections_EmptyPhasesOmitted(t *testing.T) {
	rows := []note.SectionRow{
		{ID: "row-0", Phase: note.PhaseER, Label: "Hospital Course", Content: "stable"},
	}
	sections := MergeSections(rows, nil)

	require.Len(t, sections, 1)
	assert.Equal(t, note.PhaseER, sections[0].Phase)
}

func TestMergeSections_PatientInfoCountForcedZero(t *testing.T) {
	rows := []note.SectionRow{
		{ID: "row-0", Phase: note.PhasePatientInfo, Label: "Patient Name", Content: "J. Doe"},
		{ID: "row-1", Phase: note.PhasePatientInfo, Label: "Age/Gender", Content: "70/M"},
	}
	sections := MergeSections(rows, nil)

	require.Len(t, sections, 1)
	assert.Equal(t, 0, sections[0].Count)
	assert.Contains(t, sections[0].Content, "• Patient Name: J. Doe")
}

func TestMergeSections_HasMedsOnlyForBackHome(t *testing.T) {
	rows := []note.SectionRow{
		{ID: "row-0", Phase: note.PhaseHome, Label: "Medications at home", Content: "ASA"},
		{ID: "row-1", Phase: note.PhaseBackHome, Label: "Education", Content: "inhaler"},
	}
	sections := MergeSections(rows, nil)

	require.Len(t, sections, 2)
	assert.False(t, sections[0].HasMeds, "meds label outside back_home must not set the flag")
	assert.False(t, sections[1].HasMeds)
}

// No row is dropped or double-counted during merge: the section counts sum
// to the number of rows outside patient_info.
func TestMergeSections_TotalCountProperty(t *testing.T) {
	rows := []note.SectionRow{
		{ID: "row-0", Phase: note.PhasePatientInfo, Label: "Patient Name", Content: "J. Doe"},
		{ID: "row-1", Phase: note.PhaseHome, Label: "Comorbidities", Content: "CHF"},
		{ID: "row-2", Phase: note.PhaseER, Label: "Hospital Course", Content: "stable"},
		{ID: "row-3", Phase: note.PhaseER, Label: "ED Course", Content: "triaged"},
		{ID: "row-4", Phase: note.PhaseDischarge, Label: "Discharge Plan", Content: "PT"},
		{ID: "row-5", Phase: note.PhaseBackHome, Label: "Medications", Content: "Lisinopril"},
	}
	sections := MergeSections(rows, nil)

	counted := 0
	for _, sec := range sections {
		counted += sec.Count
	}
	nonExcluded := 0
	for _, row := range rows {
		if row.Phase != note.PhasePatientInfo {
			nonExcluded++
		}
	}
	assert.Equal(t, nonExcluded, counted)
}
