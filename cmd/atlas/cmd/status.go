package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atlas-ocr/atlas/internal/ocr"
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report OCR collaborator readiness",
	Long: `Check that the configured interpreter and collaborator script exist.

Examples:
  atlas status
  atlas status --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		status := buildEngine(cfg).CheckStatus()

		var output string
		if resolveFormat(cmd, cfg) == "json" {
			b, err := json.MarshalIndent(status, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format status: %w", err)
			}
			output = string(b)
		} else {
			output = formatStatus(status)
		}
		return writeOutput(output, "")
	},
}

func formatStatus(status ocr.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extractor Status\n\n")
	fmt.Fprintf(&b, "Interpreter: %s (%s)\n", status.Interpreter, foundLabel(status.InterpreterFound))
	fmt.Fprintf(&b, "Script: %s (%s)\n", status.Script, foundLabel(status.ScriptFound))
	if status.Ready {
		b.WriteString("\nReady to process documents\n")
	} else {
		b.WriteString("\nNot ready: missing components above\n")
	}
	return b.String()
}

func foundLabel(found bool) string {
	if found {
		return "found"
	}
	return "missing"
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringP("format", "f", "", "output format (text, json)")
}
