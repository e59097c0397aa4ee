// Package cli implements the careinsight command tree.  Every command runs
// the analysis pipeline locally over a note file (or stdin), so the CLI works
// without a running API server or any backing store.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/CarePath-Insight/internal/application/analysis"
	"github.com/turtacn/CarePath-Insight/internal/application/reporting"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root cobra command with all subcommands mounted.
func NewRootCommand(logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "careinsight",
		Short:   "CarePath-Insight CLI — structured analysis of discharge notes",
		Long:    "CarePath-Insight turns free-text hospital discharge notes into structured\ncare-timeline sections, discharge-readiness and risk-trend grids, and\nlogistics summaries, rendered as tables, JSON, or reports.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pipeline := analysis.NewPipeline(nil)
	cmd.AddCommand(
		NewAnalyzeCmd(pipeline, logger),
		NewReadinessCmd(pipeline, logger),
		NewRiskCmd(pipeline, logger),
		NewReportCmd(pipeline, reporting.MustNewRenderer(), logger),
	)

	return cmd
}

// Execute is the CLI entry point.
func Execute() error {
	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            "warn",
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}

	rootCmd := NewRootCommand(logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %s\n", err.Error())
		return err
	}
	return nil
}

// readNoteText loads the note text for a command: from the --file flag when
// set, otherwise from stdin.
func readNoteText(cmd *cobra.Command, path string) (string, error) {
	var (
		raw []byte
		err error
	)
	if path != "" && path != "-" {
		raw, err = os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeNoteFetchFailed, "read note file")
		}
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeNoteFetchFailed, "read note from stdin")
		}
	}

	text := string(raw)
	if strings.TrimSpace(text) == "" {
		return "", errors.New(errors.ErrCodeNoteEmpty, "note text is empty")
	}
	return text, nil
}

// printJSON writes data as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
