// Package logistics extracts the demographic and arrangement fields of a
// discharge note for the logistics panel.  It is regex-only: no
// classification, no scoring, no state, just labeled field capture with the
// same silent tolerance for missing sections as the rest of the pipeline.
package logistics

import (
	"regexp"
	"strings"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

var (
	rePatientName = regexp.MustCompile(`(?im)^patient name\s*:\s*(.+)$`)
	reAgeGender   = regexp.MustCompile(`(?im)^age\s*/\s*gender\s*:\s*(\d+)\s*/\s*([A-Za-z]+)`)
	reAdmission   = regexp.MustCompile(`(?im)^admission date\s*:\s*(\d+\s*/\s*\d+)`)
	reDischarge   = regexp.MustCompile(`(?im)^discharge date\s*:\s*(\d+\s*/\s*\d+)`)
	reDisposition = regexp.MustCompile(`(?im)^discharge disposition\s*:\s*(.+)$`)
	reCaregiver   = regexp.MustCompile(`(?im)^caregiver[^:\n]*:\s*(.+)$`)
	reEducation   = regexp.MustCompile(`(?im)^education[^:\n]*:\s*(.+)$`)
	reFollowUp    = regexp.MustCompile(`(?im)^follow-?up[^:\n]*:\s*(.+)$`)
	reMedications = regexp.MustCompile(`(?im)^medications?\s*:\s*(.+)$`)

	reListSplit = regexp.MustCompile(`[,;]`)
)

// Extract pulls the logistics summary out of rawNote.  Absent fields stay
// zero-valued; Extract never fails.
func Extract(rawNote string) note.LogisticsSummary {
	summary := note.LogisticsSummary{
		Education:   []string{},
		FollowUps:   []note.FollowUp{},
		Medications: []string{},
	}

	if m := rePatientName.FindStringSubmatch(rawNote); m != nil {
		summary.Patient.Name = strings.TrimSpace(m[1])
	}
	if m := reAgeGender.FindStringSubmatch(rawNote); m != nil {
		summary.Patient.Age = m[1]
		summary.Patient.Gender = strings.ToUpper(m[2][:1])
	}
	if m := reAdmission.FindStringSubmatch(rawNote); m != nil {
		summary.Patient.AdmissionDate = compactDate(m[1])
	}
	if m := reDischarge.FindStringSubmatch(rawNote); m != nil {
		summary.Patient.DischargeDate = compactDate(m[1])
	}
	if m := reDisposition.FindStringSubmatch(rawNote); m != nil {
		summary.Patient.Disposition = strings.TrimSpace(m[1])
	}
	if m := reCaregiver.FindStringSubmatch(rawNote); m != nil {
		summary.Caregiver = strings.TrimSpace(m[1])
	}

	for _, m := range reEducation.FindAllStringSubmatch(rawNote, -1) {
		summary.Education = append(summary.Education, splitList(m[1])...)
	}
	for _, m := range reFollowUp.FindAllStringSubmatch(rawNote, -1) {
		for _, item := range splitList(m[1]) {
			summary.FollowUps = append(summary.FollowUps, parseFollowUp(item))
		}
	}
	for _, m := range reMedications.FindAllStringSubmatch(rawNote, -1) {
		summary.Medications = append(summary.Medications, splitList(m[1])...)
	}

	return summary
}

// parseFollowUp splits "Provider - detail" items; items without a dash keep
// the whole text as the provider.
func parseFollowUp(item string) note.FollowUp {
	if idx := strings.Index(item, " - "); idx >= 0 {
		return note.FollowUp{
			Provider: strings.TrimSpace(item[:idx]),
			Detail:   strings.TrimSpace(item[idx+3:]),
		}
	}
	return note.FollowUp{Provider: strings.TrimSpace(item)}
}

func splitList(raw string) []string {
	parts := reListSplit.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// compactDate strips internal whitespace from an "M / D" capture.
func compactDate(raw string) string {
	return strings.ReplaceAll(strings.ReplaceAll(raw, " ", ""), "\t", "")
}
