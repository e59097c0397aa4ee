package logistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNote = `Patient Name: Jordan Reyes
Age / Gender: 72 / female
Admission Date: 5 / 4
Discharge Date: 5/11
Discharge Disposition: Home with home care
Hospital Course: admitted with pneumonia
Caregiver availability: spouse at home during the day
Education provided: inhaler technique; wound care basics
Follow-Up Arrangements: Family physician - within 1 week, Respirology clinic - 4 weeks
Medications: amoxicillin, pantoprazole; salbutamol
`

func TestExtract_AllFields(t *testing.T) {
	s := Extract(sampleNote)

	assert.Equal(t, "Jordan Reyes", s.Patient.Name)
	assert.Equal(t, "72", s.Patient.Age)
	assert.Equal(t, "F", s.Patient.Gender)
	assert.Equal(t, "5/4", s.Patient.AdmissionDate)
	assert.Equal(t, "5/11", s.Patient.DischargeDate)
	assert.Equal(t, "Home with home care", s.Patient.Disposition)
	assert.Equal(t, "spouse at home during the day", s.Caregiver)

	assert.Equal(t, []string{"inhaler technique", "wound care basics"}, s.Education)
	assert.Equal(t, []string{"amoxicillin", "pantoprazole", "salbutamol"}, s.Medications)

	require.Len(t, s.FollowUps, 2)
	assert.Equal(t, "Family physician", s.FollowUps[0].Provider)
	assert.Equal(t, "within 1 week", s.FollowUps[0].Detail)
	assert.Equal(t, "Respirology clinic", s.FollowUps[1].Provider)
	assert.Equal(t, "4 weeks", s.FollowUps[1].Detail)
}

func TestExtract_EmptyNote(t *testing.T) {
	s := Extract("")

	assert.Empty(t, s.Patient.Name)
	assert.Empty(t, s.Patient.AdmissionDate)
	assert.Empty(t, s.Caregiver)
	assert.NotNil(t, s.Education)
	assert.Empty(t, s.Education)
	assert.NotNil(t, s.FollowUps)
	assert.Empty(t, s.FollowUps)
	assert.NotNil(t, s.Medications)
	assert.Empty(t, s.Medications)
}

func TestExtract_GenderNormalizedToInitial(t *testing.T) {
	s := Extract("Age / Gender: 45 / M\n")
	assert.Equal(t, "45", s.Patient.Age)
	assert.Equal(t, "M", s.Patient.Gender)

	s = Extract("Age / Gender: 45 / male\n")
	assert.Equal(t, "M", s.Patient.Gender)
}

func TestExtract_FollowUpWithoutDashKeepsProvider(t *testing.T) {
	s := Extract("Follow-Up: Cardiology\n")

	require.Len(t, s.FollowUps, 1)
	assert.Equal(t, "Cardiology", s.FollowUps[0].Provider)
	assert.Empty(t, s.FollowUps[0].Detail)
}

func TestExtract_ListItemsTrimmedAndBlanksDropped(t *testing.T) {
	s := Extract("Medications: warfarin , , metformin ;\n")

	assert.Equal(t, []string{"warfarin", "metformin"}, s.Medications)
}

func TestExtract_LabelsMatchAtLineStartOnly(t *testing.T) {
	// Mid-line mentions never capture.
	s := Extract("Plan includes Medications: none of this line matches\n")
	assert.Empty(t, s.Medications)
}
