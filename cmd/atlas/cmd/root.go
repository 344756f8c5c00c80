package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atlas-ocr/atlas/internal/config"
	"github.com/atlas-ocr/atlas/internal/ocr"
	"github.com/atlas-ocr/atlas/internal/pdf"
	"github.com/atlas-ocr/atlas/internal/pipeline"
	"github.com/atlas-ocr/atlas/internal/version"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Document field extraction for purchase orders and invoices",
	Long: `atlas turns scanned purchase orders and invoices into structured data.

Recognition itself is delegated to an external OCR process; atlas routes
files to it, extracts business fields (PO number, vendor, date, amounts,
line items) from the recognized text, and recommends processing strategies
for PDFs.

Examples:
  atlas image scan.jpg --document
  atlas pdf invoice.pdf --analyze
  atlas batch ./scans --format json
  atlas serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.PersistentFlags().GetBool("version")
		if v {
			ver, commit, date := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "atlas version %s\n", ver)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", commit)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", date)
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/atlas, /etc/atlas)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("engine-interpreter", "", "interpreter for the OCR collaborator")
	rootCmd.PersistentFlags().String("engine-script", "", "path to the OCR collaborator script")
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("engine.interpreter", rootCmd.PersistentFlags().Lookup("engine-interpreter"))
	_ = viper.BindPFlag("engine.script", rootCmd.PersistentFlags().Lookup("engine-script"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}

		var logLevel slog.Level
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration with CLI flag values applied.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	loader := GetConfigLoader()
	var cfg config.Config
	if err := loader.GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}
	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}

// buildEngine creates the collaborator client from configuration.
func buildEngine(cfg *config.Config) *ocr.CLIEngine {
	return ocr.NewCLIEngine(cfg.Engine.Interpreter, cfg.Engine.Script)
}

// buildPipeline wires the engine, the local PDF profiler, and the document
// type hint into a processing pipeline.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	return pipeline.New(buildEngine(cfg), pdf.NewProfiler(), cfg.Engine.DocumentTypeHint)
}

// writeOutput prints the rendered result to stdout or the configured file.
func writeOutput(output, outputFile string) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(os.Stdout, output)
	return err
}
