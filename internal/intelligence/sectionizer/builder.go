package sectionizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// Header and keyword patterns used by the line-scanning fold.  The scan is
// order-dependent: the discharge-plan flag and the Hospital Management
// absorption both depend on the position of a line relative to its headers.
var (
	reManagementHeader = regexp.MustCompile(`(?i)^hospital management\b`)
	reDischargeHeader  = regexp.MustCompile(`(?i)^discharge plan\b`)
	reFollowUpHeader   = regexp.MustCompile(`(?i)^follow-?up arrangements?\b`)
	// The meds header requires an immediate colon (or end of line) so that
	// discharge-plan lines like "Medication assistance: …" do not clear the
	// context flag or terminate an absorption run.
	reMedsHeader = regexp.MustCompile(`(?i)^medications?\s*(:|$)`)

	// reTerminator ends a Hospital Management absorption run.
	reTerminator = regexp.MustCompile(`(?i)^(discharge plan\b|follow-?up\b|medications?\s*(:|$))`)

	// reDischargeKeyword force-classifies a line as "discharge" while inside
	// the discharge-plan block.  These generic subsection headers would
	// otherwise be claimed by earlier phases.
	reDischargeKeyword = regexp.MustCompile(
		`(?i)^(risk for|decreased|impaired|mobility|swallowing|communication|skin|wound care|education|substance use|medication assistance)\b`)

	// reMRDHeader is the header-without-colon special case.
	reMRDHeader = regexp.MustCompile(`(?i)^most responsible diagnosis\s*$`)

	// reAttachPrev lines continue the previous row instead of opening a new one.
	reAttachPrev = regexp.MustCompile(`(?i)^consult to social work`)

	reNewlines = regexp.MustCompile(`\n+`)
)

// Builder splits raw note text into phase-classified rows.
type Builder struct {
	classifier *Classifier
}

// NewBuilder constructs a Builder over the given classifier.  A nil
// classifier gets the default taxonomy.
func NewBuilder(classifier *Classifier) *Builder {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Builder{classifier: classifier}
}

// builderState is the fold state carried left-to-right across lines.
type builderState struct {
	insideDischargePlan bool
	rows                []note.SectionRow
}

// BuildSections splits rawNote into labeled rows, applying the expansion,
// attachment, and discharge-plan override rules in a single left-to-right
// pass.  An empty or whitespace-only note yields an empty slice.
func (b *Builder) BuildSections(rawNote string) []note.SectionRow {
	lines := splitLines(rawNote)
	st := builderState{}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		// Hospital Management header: greedily absorb following "key: value"
		// lines into one block until a terminator header or a line without a
		// colon.  This reconstructs the sub-section the per-line splitter
		// would otherwise scatter.
		if reManagementHeader.MatchString(line) {
			block := []string{}
			label, content := splitLabelContent(line)
			if content != "" {
				block = append(block, content)
			}
			for i+1 < len(lines) {
				next := lines[i+1]
				if !strings.Contains(next, ":") || reTerminator.MatchString(next) {
					break
				}
				block = append(block, next)
				i++
			}
			st.rows = append(st.rows, note.SectionRow{
				ID:      rowID(len(st.rows)),
				Phase:   b.classifier.Classify(line),
				Label:   label,
				Content: strings.Join(block, "\n"),
			})
			continue
		}

		// Discharge-plan context tracking.
		if reDischargeHeader.MatchString(line) {
			st.insideDischargePlan = true
			label, content := splitLabelContent(line)
			if content == "" {
				// Bare header: label-only row.  The self-referential bullet
				// this produces is discounted later by the weight calculator.
				st.rows = append(st.rows, note.SectionRow{
					ID:      rowID(len(st.rows)),
					Phase:   note.PhaseDischarge,
					Label:   label,
					Content: label,
				})
				continue
			}
			// Header with inline content: the remainder is a discharge-plan
			// line in its own right and gets the full per-line treatment.
			line = content
		}
		if reFollowUpHeader.MatchString(line) || reMedsHeader.MatchString(line) {
			st.insideDischargePlan = false
		}

		// Header-without-colon special case: content comes from the next
		// line with any leading dash stripped, consuming that line.
		if reMRDHeader.MatchString(line) {
			content := ""
			if i+1 < len(lines) {
				content = strings.TrimSpace(strings.TrimLeft(lines[i+1], "-– "))
				i++
			}
			st.rows = append(st.rows, note.SectionRow{
				ID:      rowID(len(st.rows)),
				Phase:   b.classifier.Classify("Most Responsible Diagnosis"),
				Label:   "Most Responsible Diagnosis",
				Content: content,
			})
			continue
		}

		// Attach-to-previous: social-work consult lines continue the prior row.
		if reAttachPrev.MatchString(line) && len(st.rows) > 0 {
			prev := &st.rows[len(st.rows)-1]
			if prev.Content != "" {
				prev.Content += " " + line
			} else {
				prev.Content = line
			}
			continue
		}

		label, content := splitLabelContent(line)
		if content == "" {
			// Label-only line: the whole line serves as both label and content.
			content = label
		}

		phase := b.classifier.Classify(line)
		if st.insideDischargePlan && reDischargeKeyword.MatchString(line) {
			phase = note.PhaseDischarge
		}

		st.rows = append(st.rows, note.SectionRow{
			ID:      rowID(len(st.rows)),
			Phase:   phase,
			Label:   label,
			Content: content,
		})
	}

	return st.rows
}

// splitLines splits on one-or-more newlines, trims each line, and drops
// empties.
func splitLines(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := reNewlines.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitLabelContent splits a line at its first colon.  Lines without a colon
// return the whole line as the label and an empty content.
func splitLabelContent(line string) (string, string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:])
}

// rowID returns the deterministic row identifier for position n.  Determinism
// keeps the whole pipeline a pure function of its input.
func rowID(n int) string {
	return fmt.Sprintf("row-%d", n)
}
