package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlas-ocr/atlas/internal/pipeline"
)

// pdfCmd represents the pdf command.
var pdfCmd = &cobra.Command{
	Use:   "pdf [file]",
	Short: "Process or analyze a PDF document",
	Long: `Run OCR on a PDF, or inspect its content makeup with --analyze to get
a processing strategy recommendation without any recognition work.

Examples:
  atlas pdf invoice.pdf
  atlas pdf invoice.pdf --document
  atlas pdf invoice.pdf --analyze
  atlas pdf invoice.pdf --analyze --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		p, err := buildPipeline(cfg)
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		format := resolveFormat(cmd, cfg)
		outputFile, _ := cmd.Flags().GetString("output")

		analyzeOnly, _ := cmd.Flags().GetBool("analyze")
		if analyzeOnly {
			rec, err := p.AnalyzePDF(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var output string
			if format == "json" {
				b, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format analysis: %w", err)
				}
				output = string(b)
			} else {
				output = pipeline.FormatAnalysisReport(args[0], rec)
			}
			return writeOutput(output, outputFile)
		}

		fr, err := p.ProcessPDF(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		asDocument, _ := cmd.Flags().GetBool("document")

		var output string
		if format == "json" {
			output, err = pipeline.ToJSON(fr)
			if err != nil {
				return fmt.Errorf("failed to format result: %w", err)
			}
		} else if asDocument {
			output = pipeline.FormatDocumentReport(fr)
		} else {
			output = pipeline.FormatTextReport(fr)
		}
		return writeOutput(output, outputFile)
	},
}

func init() {
	rootCmd.AddCommand(pdfCmd)
	pdfCmd.Flags().BoolP("analyze", "a", false, "analyze content makeup without running recognition")
	pdfCmd.Flags().BoolP("document", "d", false, "extract structured document fields")
	pdfCmd.Flags().StringP("format", "f", "", "output format (text, json)")
	pdfCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
}
