// Package reporting renders a completed analysis into human-readable
// discharge reports.  The renderer is template-driven: the same
// AnalysisResult that feeds the dashboard API is bound into Markdown or
// plain-text output, so the two consumers can never drift apart.
package reporting

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/turtacn/CarePath-Insight/pkg/errors"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// Format selects the report output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Renderer renders analysis results into discharge reports.
type Renderer interface {
	Render(result *notetypes.AnalysisResult, format Format) ([]byte, error)
}

// rendererImpl implements Renderer with pre-parsed templates.
type rendererImpl struct {
	markdown *template.Template
	text     *template.Template
}

// NewRenderer parses the built-in templates.  Parsing happens once, at
// construction, so Render never fails on template syntax.
func NewRenderer() (Renderer, error) {
	funcs := template.FuncMap{
		"indent": func(prefix, s string) string {
			if s == "" {
				return ""
			}
			return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
		},
		"score": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"joinList": func(items []string) string {
			if len(items) == 0 {
				return "none recorded"
			}
			return strings.Join(items, ", ")
		},
		"fmtTime": func(t notetypes.AnalysisResult) string {
			return t.AnalyzedAt.Time().Format(time.RFC3339)
		},
	}

	md, err := template.New("markdown").Funcs(funcs).Parse(markdownTemplate)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "parse markdown report template")
	}
	txt, err := template.New("text").Funcs(funcs).Parse(textTemplate)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "parse text report template")
	}
	return &rendererImpl{markdown: md, text: txt}, nil
}

// MustNewRenderer panics on template parse failure; the templates are
// compiled in, so a failure is a programming error.
func MustNewRenderer() Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *rendererImpl) Render(result *notetypes.AnalysisResult, format Format) ([]byte, error) {
	if result == nil {
		return nil, errors.InvalidParam("analysis result is required")
	}

	var tmpl *template.Template
	switch format {
	case FormatMarkdown, "":
		tmpl = r.markdown
	case FormatText:
		tmpl = r.text
	default:
		return nil, errors.InvalidParam(fmt.Sprintf("unsupported report format %q", format))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, result); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "render report")
	}
	return buf.Bytes(), nil
}

const markdownTemplate = `# Discharge Note Analysis

**Patient:** {{with .Logistics.Patient.Name}}{{.}}{{else}}unknown{{end}}
**Age/Gender:** {{.Logistics.Patient.Age}}{{with .Logistics.Patient.Gender}}/{{.}}{{end}}
**Stay:** {{.Logistics.Patient.AdmissionDate}} – {{.Logistics.Patient.DischargeDate}}
**Disposition:** {{with .Logistics.Patient.Disposition}}{{.}}{{else}}not recorded{{end}}
**Analyzed:** {{fmtTime .}}

## Care Timeline
{{range .Events}}
- **{{.PhaseLabel}}** (weight {{score .Value}})
{{- end}}

## Sections
{{range .Sections}}
### {{.Label}} ({{.Count}} item{{if ne .Count 1}}s{{end}})

{{.Content}}
{{end}}
## Discharge Readiness
{{if .ReadinessGrid}}
| Date | Mobility | Wound Care | Medical Stability | Swallowing | Education | Social Support |
|------|----------|------------|-------------------|------------|-----------|----------------|
{{- range .ReadinessGrid}}
| {{.Date}} | {{score .Mobility}} | {{score .WoundCare}} | {{score .MedicalStability}} | {{score .Swallowing}} | {{score .Education}} | {{score .SocialSupport}} |
{{- end}}
{{else}}
No stay dates found; readiness could not be charted.
{{end}}
## Risk Trend
{{if .RiskComposite}}
| Date | Composite Risk | Δ |
|------|----------------|---|
{{- range .RiskComposite}}
| {{.Date}} | {{score .Score}} | {{score .Delta}} |
{{- end}}
{{else}}
No stay dates found; risk could not be charted.
{{end}}
## Logistics

- Medications: {{joinList .Logistics.Medications}}
- Education: {{joinList .Logistics.Education}}
- Caregiver: {{with .Logistics.Caregiver}}{{.}}{{else}}not recorded{{end}}
{{- range .Logistics.FollowUps}}
- Follow-up: {{.Provider}}{{with .Detail}} — {{.}}{{end}}
{{- end}}
`

const textTemplate = `DISCHARGE NOTE ANALYSIS
=======================

Patient:     {{with .Logistics.Patient.Name}}{{.}}{{else}}unknown{{end}}
Stay:        {{.Logistics.Patient.AdmissionDate}} - {{.Logistics.Patient.DischargeDate}}
Disposition: {{with .Logistics.Patient.Disposition}}{{.}}{{else}}not recorded{{end}}
Analyzed:    {{fmtTime .}}

TIMELINE
{{range .Events}}  {{.PhaseLabel}}: weight {{score .Value}}
{{end}}
SECTIONS
{{range .Sections}}
[{{.Label}}]
{{indent "  " .Content}}
{{end}}
LOGISTICS
  Medications: {{joinList .Logistics.Medications}}
  Education:   {{joinList .Logistics.Education}}
  Caregiver:   {{with .Logistics.Caregiver}}{{.}}{{else}}not recorded{{end}}
{{- range .Logistics.FollowUps}}
  Follow-up:   {{.Provider}}{{with .Detail}} ({{.}}){{end}}
{{- end}}
`
