package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/CarePath-Insight/internal/application/analysis"
	"github.com/turtacn/CarePath-Insight/internal/application/reporting"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
)

var (
	reportFile    string
	reportFormat  string
	reportOutPath string
)

// NewReportCmd creates the report command.
func NewReportCmd(pipeline *analysis.Pipeline, renderer reporting.Renderer, logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a discharge analysis report",
		Long:  "Runs the full analysis and renders it as a markdown or plain-text report,\nwritten to stdout or to --out.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readNoteText(cmd, reportFile)
			if err != nil {
				return err
			}

			result := pipeline.Run(text)
			doc, err := renderer.Render(result, reporting.Format(reportFormat))
			if err != nil {
				return err
			}

			if reportOutPath != "" {
				if err := os.WriteFile(reportOutPath, doc, 0o644); err != nil {
					return errors.Wrap(err, errors.ErrCodeReportRenderFailed, "write report file")
				}
				logger.Info("report written",
					logging.String("path", reportOutPath),
					logging.String("format", reportFormat),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportOutPath)
				return nil
			}

			_, err = cmd.OutOrStdout().Write(doc)
			return err
		},
	}

	cmd.Flags().StringVarP(&reportFile, "file", "f", "", "note file path (default: stdin)")
	cmd.Flags().StringVar(&reportFormat, "format", "markdown", "report format: markdown|text")
	cmd.Flags().StringVar(&reportOutPath, "out", "", "write the report to this path instead of stdout")

	return cmd
}
