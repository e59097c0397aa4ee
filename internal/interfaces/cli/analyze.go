package cli

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/turtacn/CarePath-Insight/internal/application/analysis"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

var (
	analyzeFile        string
	analyzeOutput      string
	analyzeIncludeMeds bool
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd(pipeline *analysis.Pipeline, logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis over a discharge note",
		Long:  "Parses a discharge note into care-timeline sections and phase events.\nReads the note from --file, or from stdin when no file is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readNoteText(cmd, analyzeFile)
			if err != nil {
				return err
			}

			result := pipeline.Run(text)
			logger.Debug("analysis complete",
				logging.Int("sections", len(result.Sections)),
				logging.Int("events", len(result.Events)),
			)

			if strings.ToLower(analyzeOutput) == "json" {
				return printJSON(cmd, result)
			}
			return printAnalysisTables(cmd, result, analyzeIncludeMeds)
		},
	}

	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "note file path (default: stdin)")
	cmd.Flags().StringVarP(&analyzeOutput, "output", "o", "table", "output format: table|json")
	cmd.Flags().BoolVar(&analyzeIncludeMeds, "include-meds", false, "count medication bullets in event weights")

	return cmd
}

func printAnalysisTables(cmd *cobra.Command, result *notetypes.AnalysisResult, includeMeds bool) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "\n=== Care Timeline Sections ===")
	fmt.Fprintln(out)
	sectionTable := tablewriter.NewWriter(out)
	sectionTable.SetHeader([]string{"Phase", "Label", "Items", "Meds"})
	sectionTable.SetBorder(false)
	for _, s := range result.Sections {
		meds := ""
		if s.HasMeds {
			meds = "yes"
		}
		sectionTable.Append([]string{string(s.Phase), s.Label, fmt.Sprintf("%d", s.Count), meds})
	}
	sectionTable.Render()

	events := result.Events
	if includeMeds {
		events = result.EventsWithMeds
	}
	fmt.Fprintln(out, "\n=== Phase Events ===")
	fmt.Fprintln(out)
	eventTable := tablewriter.NewWriter(out)
	eventTable.SetHeader([]string{"Phase", "Weight"})
	eventTable.SetBorder(false)
	for _, e := range events {
		eventTable.Append([]string{e.PhaseLabel, fmt.Sprintf("%.1f", e.Value)})
	}
	eventTable.Render()

	lg := result.Logistics
	fmt.Fprintln(out, "\n=== Logistics ===")
	fmt.Fprintf(out, "Patient:     %s (age %s, gender %s)\n", orDash(lg.Patient.Name), orDash(lg.Patient.Age), orDash(lg.Patient.Gender))
	fmt.Fprintf(out, "Stay:        %s – %s\n", orDash(lg.Patient.AdmissionDate), orDash(lg.Patient.DischargeDate))
	fmt.Fprintf(out, "Disposition: %s\n", orDash(lg.Patient.Disposition))
	fmt.Fprintf(out, "Caregiver:   %s\n", orDash(lg.Caregiver))
	fmt.Fprintf(out, "Medications: %d   Follow-ups: %d   Education items: %d\n",
		len(lg.Medications), len(lg.FollowUps), len(lg.Education))

	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
