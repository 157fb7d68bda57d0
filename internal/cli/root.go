package cli

import (
	"context"
	"fmt"

	"resumelens/internal/config"
	"resumelens/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "resumelens",
	Short: "A CLI tool for AI-assisted resume analysis",
	Long: `ResumeLens analyzes PDF resumes using AI. It extracts the resume text
(with OCR fallback for scanned documents), translates it to the configured
target language when needed, and produces a detailed analysis together with
an ATS compliance check and optional PDF/DOCX report artifacts.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("config not found in context")
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) (*errors.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger, nil
	}
	return nil, fmt.Errorf("logger not found in context")
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
