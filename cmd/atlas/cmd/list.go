package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlas-ocr/atlas/internal/batch"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List processable files in a folder",
	Long: `Show the files in a folder that atlas can process, with their size
and modification time.

Examples:
  atlas list ./scans
  atlas list ./scans --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		entries, err := batch.ListEntries(args[0])
		if err != nil {
			return err
		}

		var output string
		if resolveFormat(cmd, cfg) == "json" {
			b, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format listing: %w", err)
			}
			output = string(b)
		} else {
			output = batch.FormatListing(args[0], entries)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		return writeOutput(output, outputFile)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("format", "f", "", "output format (text, json)")
	listCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
}
