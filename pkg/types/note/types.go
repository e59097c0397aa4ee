// Package note defines the transport and result types produced by the
// discharge-note analysis pipeline.  All structures are immutable value
// objects: the pipeline constructs them from the raw note text and the static
// phase taxonomy, and consumers (charts, report rendering, API responses)
// treat them as read-only.
package note

import "github.com/turtacn/CarePath-Insight/pkg/types/common"

// PhaseKey identifies a stage in the patient's care timeline.
type PhaseKey string

const (
	PhasePatientInfo PhaseKey = "patient_info"
	PhaseHome        PhaseKey = "home"
	PhaseER          PhaseKey = "er"
	PhaseUnit        PhaseKey = "unit"
	PhaseDischarge   PhaseKey = "discharge"
	PhaseBackHome    PhaseKey = "back_home"
)

// Phase describes a single care-timeline phase as exposed to consumers.
// Order defines left-to-right timeline sequencing; patient_info carries
// order -1 and is excluded from timeline weighting.
type Phase struct {
	Key   PhaseKey `json:"key"`
	Label string   `json:"label"`
	Order int      `json:"order"`
}

// SectionRow is one classified (label, content) row extracted from the raw
// note.  Rows are produced by the section builder and consumed immediately by
// the section merger; they are not retained past the pipeline run.
type SectionRow struct {
	ID      string   `json:"id"`
	Phase   PhaseKey `json:"phase"`
	Label   string   `json:"label"`
	Content string   `json:"content"`
}

// MergedSection is the per-phase aggregation of all rows classified into that
// phase.  Content is a newline-joined bullet block ("• label: content").
type MergedSection struct {
	ID      string   `json:"id"`
	Phase   PhaseKey `json:"phase"`
	Label   string   `json:"label"`
	Content string   `json:"content"`
	Count   int      `json:"count"`
	HasMeds bool     `json:"has_meds"`
}

// Event is the phase-level numeric weight derived from a MergedSection,
// plotted by the timeline chart.  TS is a coarse ordinal placeholder
// (phase order × 1000); the contract is only that TS orders phases
// correctly, not that it is a real timestamp.
type Event struct {
	ID         string   `json:"id"`
	Phase      PhaseKey `json:"phase"`
	PhaseLabel string   `json:"phase_label"`
	Text       string   `json:"text"`
	Value      float64  `json:"value"`
	TS         int64    `json:"ts"`
}

// GridRow is one calendar day of per-domain scores.  For readiness grids the
// scale reads 0 = not ready, 3 = fully ready; for risk grids it is inverted:
// 0 = low risk, 3 = high risk.  The JSON keys match the chart consumers'
// column names and the "M/D" date format contract.
type GridRow struct {
	Date             string  `json:"Date"`
	Mobility         float64 `json:"Mobility"`
	WoundCare        float64 `json:"WoundCare"`
	MedicalStability float64 `json:"MedicalStability"`
	Swallowing       float64 `json:"Swallowing"`
	Education        float64 `json:"Education"`
	SocialSupport    float64 `json:"SocialSupport"`
}

// Domain names the six clinical dimensions scored by the readiness and risk
// extractors.
type Domain string

const (
	DomainMobility         Domain = "Mobility"
	DomainWoundCare        Domain = "WoundCare"
	DomainMedicalStability Domain = "MedicalStability"
	DomainSwallowing       Domain = "Swallowing"
	DomainEducation        Domain = "Education"
	DomainSocialSupport    Domain = "SocialSupport"
)

// Domains lists all scored domains in canonical column order.
var Domains = []Domain{
	DomainMobility,
	DomainWoundCare,
	DomainMedicalStability,
	DomainSwallowing,
	DomainEducation,
	DomainSocialSupport,
}

// Get returns the named domain score of a GridRow.
func (r GridRow) Get(d Domain) float64 {
	switch d {
	case DomainMobility:
		return r.Mobility
	case DomainWoundCare:
		return r.WoundCare
	case DomainMedicalStability:
		return r.MedicalStability
	case DomainSwallowing:
		return r.Swallowing
	case DomainEducation:
		return r.Education
	case DomainSocialSupport:
		return r.SocialSupport
	}
	return 0
}

// Set assigns the named domain score of a GridRow in place.
func (r *GridRow) Set(d Domain, v float64) {
	switch d {
	case DomainMobility:
		r.Mobility = v
	case DomainWoundCare:
		r.WoundCare = v
	case DomainMedicalStability:
		r.MedicalStability = v
	case DomainSwallowing:
		r.Swallowing = v
	case DomainEducation:
		r.Education = v
	case DomainSocialSupport:
		r.SocialSupport = v
	}
}

// CompositePoint is one day of the derived composite risk score consumed by
// the risk-trend chart.
type CompositePoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
	Delta float64 `json:"delta"`
}

// FollowUp is a single follow-up arrangement extracted by the logistics
// extractor.
type FollowUp struct {
	Provider string `json:"provider"`
	Detail   string `json:"detail"`
}

// LogisticsSummary is the output of the regex-only logistics extractor,
// consumed by the logistics panel.
type LogisticsSummary struct {
	Patient     PatientInfo `json:"patient"`
	Education   []string    `json:"education"`
	FollowUps   []FollowUp  `json:"follow_ups"`
	Medications []string    `json:"medications"`
	Caregiver   string      `json:"caregiver"`
}

// PatientInfo carries the demographic header fields of a discharge note.
type PatientInfo struct {
	Name          string `json:"name"`
	Age           string `json:"age"`
	Gender        string `json:"gender"`
	AdmissionDate string `json:"admission_date"`
	DischargeDate string `json:"discharge_date"`
	Disposition   string `json:"disposition"`
}

// AnalysisResult is the complete output of one pipeline run over a raw note.
// The same result feeds the interactive dashboard API and the report/export
// path, eliminating drift between the two consumers.
type AnalysisResult struct {
	NoteID         common.ID        `json:"note_id,omitempty"`
	Phases         []Phase          `json:"phases"`
	Sections       []MergedSection  `json:"sections"`
	Events         []Event          `json:"events"`
	EventsWithMeds []Event          `json:"events_with_meds"`
	ReadinessGrid  []GridRow        `json:"readiness_grid"`
	RiskGrid       []GridRow        `json:"risk_grid"`
	RiskComposite  []CompositePoint `json:"risk_composite"`
	Logistics      LogisticsSummary `json:"logistics"`
	AnalyzedAt     common.Timestamp `json:"analyzed_at"`
}
