package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/atlas-ocr/atlas/internal/batch"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Process every supported file in a folder",
	Long: `Discover processable files (jpg, jpeg, png, pdf) in a folder and run
each through recognition and field extraction. Individual failures do not
abort the rest of the batch.

Examples:
  atlas batch ./scans
  atlas batch ./scans --limit 5 --format json
  atlas batch ./scans --output results.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		p, err := buildPipeline(cfg)
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		limit := cfg.Batch.Limit
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		batchCfg := &batch.Config{Limit: limit}
		if !quiet {
			batchCfg.Progress = func(done, total int, path string, err error) {
				if err != nil {
					slog.Warn("file failed", "file", path, "done", done, "total", total, "error", err)
					return
				}
				slog.Info("file processed", "file", path, "done", done, "total", total)
			}
		}

		result, err := batch.ProcessBatch(cmd.Context(), p, args[0], batchCfg)
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		return result.SaveResults(resolveFormat(cmd, cfg), outputFile)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntP("limit", "l", 0, "maximum files to process (default from config)")
	batchCmd.Flags().StringP("format", "f", "", "output format (text, json)")
	batchCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress per-file progress logging")
}
