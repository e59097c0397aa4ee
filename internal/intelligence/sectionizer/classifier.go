package sectionizer

import (
	"regexp"
	"strings"

	"github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// reBareManagement matches a bare "Hospital Management" mention anywhere in a
// line; used only by the classifier fallback.
var reBareManagement = regexp.MustCompile(`(?i)hospital management`)

// Classifier maps a raw note line to a timeline phase.
type Classifier struct {
	taxonomy Taxonomy
}

// NewClassifier constructs a Classifier over the given taxonomy.  A nil or
// empty taxonomy falls back to DefaultTaxonomy.
func NewClassifier(taxonomy Taxonomy) *Classifier {
	if len(taxonomy) == 0 {
		taxonomy = DefaultTaxonomy()
	}
	return &Classifier{taxonomy: taxonomy}
}

// Classify returns the phase key of the first phase, in taxonomy order,
// whose rule set matches line.  Taxonomy order is the tie-break: rule order
// within a phase never changes the outcome across phases.
//
// Classify never fails.  Lines matching no rule fall back to "unit" when
// they mention Hospital Management, otherwise "home".
func (c *Classifier) Classify(line string) note.PhaseKey {
	trimmed := strings.TrimSpace(line)
	for _, phase := range c.taxonomy {
		for _, rule := range phase.Rules {
			if rule.MatchString(trimmed) {
				return phase.Key
			}
		}
	}
	if reBareManagement.MatchString(trimmed) {
		return note.PhaseUnit
	}
	return note.PhaseHome
}

// Taxonomy returns the classifier's taxonomy.
func (c *Classifier) Taxonomy() Taxonomy {
	return c.taxonomy
}
