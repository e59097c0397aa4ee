package analysis

import (
	"time"

	"github.com/turtacn/CarePath-Insight/internal/intelligence/common"
	"github.com/turtacn/CarePath-Insight/internal/intelligence/logistics"
	"github.com/turtacn/CarePath-Insight/internal/intelligence/readiness"
	"github.com/turtacn/CarePath-Insight/internal/intelligence/risktrend"
	"github.com/turtacn/CarePath-Insight/internal/intelligence/sectionizer"
	typescommon "github.com/turtacn/CarePath-Insight/pkg/types/common"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// Pipeline runs every extractor over a raw note and assembles the complete
// AnalysisResult.  It is a pure computation: no I/O, no shared state, safe
// for concurrent use.
type Pipeline struct {
	builder   *sectionizer.Builder
	taxonomy  sectionizer.Taxonomy
	readiness *readiness.Extractor
	risk      *risktrend.Extractor
}

// NewPipeline wires the default taxonomy and rule tables.  metrics may be nil.
func NewPipeline(metrics common.NoteMetrics) *Pipeline {
	taxonomy := sectionizer.DefaultTaxonomy()
	return &Pipeline{
		builder:   sectionizer.NewBuilder(sectionizer.NewClassifier(taxonomy)),
		taxonomy:  taxonomy,
		readiness: readiness.NewExtractor(nil, metrics),
		risk:      risktrend.NewExtractor(nil, metrics),
	}
}

// Run analyzes rawNote end to end.  Every extractor tolerates missing or
// malformed sections by producing empty output, so Run never fails: the worst
// case is a result whose collections are all empty.
func (p *Pipeline) Run(rawNote string) *notetypes.AnalysisResult {
	rows := p.builder.BuildSections(rawNote)
	sections := sectionizer.MergeSections(rows, p.taxonomy)

	riskGrid := p.risk.ExtractGrid(rawNote)

	return &notetypes.AnalysisResult{
		Phases:         p.taxonomy.Phases(),
		Sections:       sections,
		Events:         sectionizer.ComputeEvents(p.taxonomy, sections, false),
		EventsWithMeds: sectionizer.ComputeEvents(p.taxonomy, sections, true),
		ReadinessGrid:  p.readiness.ExtractGrid(rawNote),
		RiskGrid:       riskGrid,
		RiskComposite:  risktrend.CompositeTrend(riskGrid),
		Logistics:      logistics.Extract(rawNote),
		AnalyzedAt:     typescommon.Timestamp(time.Now().UTC()),
	}
}
