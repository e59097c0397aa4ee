package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const scopedNote = `Patient Name: J. Doe
Hospital Course: admitted with pneumonia, brief ICU stay
Hospital Management: IV antibiotics, telemetry monitoring
Discharge Plan: walker at all times, wound care referral
Follow-Up Arrangements: clinic in 2 weeks
`

func TestNewExcerpts_Scoping(t *testing.T) {
	e := NewExcerpts(scopedNote)

	assert.Contains(t, e.Course, "icu stay")
	assert.NotContains(t, e.Course, "iv antibiotics")

	assert.Contains(t, e.Management, "telemetry")
	assert.NotContains(t, e.Management, "walker")

	assert.Contains(t, e.DischargePlan, "wound care referral")
	assert.NotContains(t, e.DischargePlan, "clinic in 2 weeks")

	assert.Contains(t, e.Full, "patient name")
}

func TestNewExcerpts_AbsentSectionsAreEmpty(t *testing.T) {
	e := NewExcerpts("Patient Name: J. Doe")
	assert.Empty(t, e.Management)
	assert.Empty(t, e.DischargePlan)
	assert.Empty(t, e.Course)
}

func TestContainsAny(t *testing.T) {
	e := NewExcerpts(scopedNote)

	assert.True(t, e.ContainsAny(ScopeManagement, []string{"telemetry", "zzz"}))
	assert.False(t, e.ContainsAny(ScopeManagement, []string{"walker"}))
	assert.True(t, e.ContainsAny(ScopeFull, []string{"Walker"}), "matching is case-insensitive")
	assert.False(t, e.ContainsAny(ScopeCourse, nil))
}

func TestGet_UnknownScopeFallsBackToFull(t *testing.T) {
	e := NewExcerpts(scopedNote)
	assert.Equal(t, e.Full, e.Get(Scope("other")))
}
