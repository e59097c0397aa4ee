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
	readinessFile   string
	readinessOutput string

	riskFile      string
	riskOutput    string
	riskComposite bool
)

// NewReadinessCmd creates the readiness command.
func NewReadinessCmd(pipeline *analysis.Pipeline, logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Extract the day-by-day discharge-readiness grid",
		Long:  "Scores each day of the hospital stay across the six clinical domains\non a 0 (not ready) to 3 (fully ready) scale.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readNoteText(cmd, readinessFile)
			if err != nil {
				return err
			}

			result := pipeline.Run(text)
			logger.Debug("readiness grid extracted", logging.Int("days", len(result.ReadinessGrid)))

			if strings.ToLower(readinessOutput) == "json" {
				return printJSON(cmd, result.ReadinessGrid)
			}
			printGridTable(cmd, "Discharge Readiness (0 = not ready, 3 = fully ready)", result.ReadinessGrid, "%.0f")
			return nil
		},
	}

	cmd.Flags().StringVarP(&readinessFile, "file", "f", "", "note file path (default: stdin)")
	cmd.Flags().StringVarP(&readinessOutput, "output", "o", "table", "output format: table|json")

	return cmd
}

// NewRiskCmd creates the risk command.
func NewRiskCmd(pipeline *analysis.Pipeline, logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Extract the day-by-day risk-trend grid",
		Long:  "Scores each day of the hospital stay across the six clinical domains\non a 0 (low risk) to 3 (high risk) scale, falling toward discharge.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readNoteText(cmd, riskFile)
			if err != nil {
				return err
			}

			result := pipeline.Run(text)
			logger.Debug("risk grid extracted", logging.Int("days", len(result.RiskGrid)))

			if strings.ToLower(riskOutput) == "json" {
				if riskComposite {
					return printJSON(cmd, result.RiskComposite)
				}
				return printJSON(cmd, result.RiskGrid)
			}

			printGridTable(cmd, "Risk Trend (0 = low risk, 3 = high risk)", result.RiskGrid, "%.1f")
			if riskComposite {
				printCompositeTable(cmd, result.RiskComposite)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&riskFile, "file", "f", "", "note file path (default: stdin)")
	cmd.Flags().StringVarP(&riskOutput, "output", "o", "table", "output format: table|json")
	cmd.Flags().BoolVar(&riskComposite, "composite", false, "include the weighted composite trend")

	return cmd
}

func printGridTable(cmd *cobra.Command, title string, grid []notetypes.GridRow, scoreFormat string) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\n=== %s ===\n\n", title)
	if len(grid) == 0 {
		fmt.Fprintln(out, "No stay dates found in note.")
		return
	}

	headers := make([]string, 0, len(notetypes.Domains)+1)
	headers = append(headers, "Date")
	for _, d := range notetypes.Domains {
		headers = append(headers, string(d))
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(headers)
	table.SetBorder(false)
	for _, row := range grid {
		cells := make([]string, 0, len(headers))
		cells = append(cells, row.Date)
		for _, d := range notetypes.Domains {
			cells = append(cells, fmt.Sprintf(scoreFormat, row.Get(d)))
		}
		table.Append(cells)
	}
	table.Render()
}

func printCompositeTable(cmd *cobra.Command, trend []notetypes.CompositePoint) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "\n=== Composite Risk Trend ===")
	fmt.Fprintln(out)
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Date", "Score", "Delta"})
	table.SetBorder(false)
	for _, p := range trend {
		table.Append([]string{p.Date, fmt.Sprintf("%.2f", p.Score), fmt.Sprintf("%+.2f", p.Delta)})
	}
	table.Render()
}
