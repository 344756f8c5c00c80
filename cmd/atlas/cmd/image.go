package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlas-ocr/atlas/internal/config"
	"github.com/atlas-ocr/atlas/internal/pipeline"
)

// imageCmd represents the image command.
var imageCmd = &cobra.Command{
	Use:   "image [file]",
	Short: "Process a scanned image",
	Long: `Run OCR on a single image and print the recognized text, or extract
structured purchase order / invoice fields with --document.

Examples:
  atlas image scan.jpg
  atlas image scan.jpg --document
  atlas image scan.jpg --document --format json --output result.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		p, err := buildPipeline(cfg)
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		fr, err := p.ProcessImage(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		asDocument, _ := cmd.Flags().GetBool("document")
		format := resolveFormat(cmd, cfg)

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

		outputFile, _ := cmd.Flags().GetString("output")
		return writeOutput(output, outputFile)
	},
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.Flags().BoolP("document", "d", false, "extract structured document fields")
	imageCmd.Flags().StringP("format", "f", "", "output format (text, json)")
	imageCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
}

// resolveFormat prefers the command flag over the configured default.
func resolveFormat(cmd *cobra.Command, cfg *config.Config) string {
	format, _ := cmd.Flags().GetString("format")
	if format != "" {
		return format
	}
	return cfg.Output.Format
}
