package common

import (
	"regexp"
	"strings"
)

// Scope names one of the text regions a scoring rule may be bound to.
type Scope string

const (
	// ScopeFull is the entire note.
	ScopeFull Scope = "full"
	// ScopeManagement is the Hospital Management section.
	ScopeManagement Scope = "management"
	// ScopeDischargePlan is the Discharge Plan section.
	ScopeDischargePlan Scope = "discharge_plan"
	// ScopeCourse is the Hospital Course section.
	ScopeCourse Scope = "course"
)

var (
	reManagementStart = regexp.MustCompile(`(?i)hospital management`)
	reDischargeStart  = regexp.MustCompile(`(?i)discharge plan`)
	reCourseStart     = regexp.MustCompile(`(?i)hospital course`)

	// Section boundaries: the next recurring top-level header terminates the
	// excerpt.
	reSectionBoundary = regexp.MustCompile(
		`(?i)(hospital management|discharge plan|hospital course|follow-?up arrangements?|medications?:|education:)`)
)

// Excerpts holds the lowercased text regions scanned by the scoring rule
// tables.  Building them once per note keeps the per-day scoring loops free
// of repeated regex work.
type Excerpts struct {
	Full          string
	Management    string
	DischargePlan string
	Course        string
}

// NewExcerpts scopes rawNote into its scannable regions.  Absent sections
// yield empty excerpts, which simply never match any keyword.
func NewExcerpts(rawNote string) Excerpts {
	return Excerpts{
		Full:          strings.ToLower(rawNote),
		Management:    excerptFrom(rawNote, reManagementStart),
		DischargePlan: excerptFrom(rawNote, reDischargeStart),
		Course:        excerptFrom(rawNote, reCourseStart),
	}
}

// Get returns the excerpt for a scope; unknown scopes fall back to the full
// note.
func (e Excerpts) Get(s Scope) string {
	switch s {
	case ScopeManagement:
		return e.Management
	case ScopeDischargePlan:
		return e.DischargePlan
	case ScopeCourse:
		return e.Course
	default:
		return e.Full
	}
}

// ContainsAny reports whether any keyword occurs in the scoped excerpt.
// Keywords are matched as lowercase substrings, mirroring the free-text
// tolerance of the rest of the pipeline.
func (e Excerpts) ContainsAny(s Scope, keywords []string) bool {
	text := e.Get(s)
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// excerptFrom extracts the section starting at the first match of start and
// ending at the next section boundary (or end of note).  Returns lowercased
// text, or "" when the section is absent.
func excerptFrom(rawNote string, start *regexp.Regexp) string {
	loc := start.FindStringIndex(rawNote)
	if loc == nil {
		return ""
	}
	rest := rawNote[loc[1]:]
	if bound := reSectionBoundary.FindStringIndex(rest); bound != nil {
		rest = rest[:bound[0]]
	}
	return strings.ToLower(rawNote[loc[0]:loc[1]] + rest)
}
