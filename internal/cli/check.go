package cli

import (
	"context"
	"fmt"

	"resumelens/internal/ai"
	"resumelens/internal/common"
	"resumelens/internal/extract"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [resume-pdf]",
	Short: "Check a PDF resume for ATS compliance",
	Long: `Check a PDF resume for ATS (Applicant Tracking System) compliance
without running the full analysis. The result lists machine-readability
strengths, weaknesses, and suggestions.

The check degrades rather than fails: if the AI response cannot be obtained,
empty lists are returned and the result is marked degraded.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if checkConfig.OutputFormat == "" {
			checkConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(checkConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runCheck,
}

var checkConfig common.CommandConfig

func init() {
	checkCmd.Flags().StringVarP(&checkConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	checkCmd.Flags().StringVar(&checkConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = checkCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	fileProcessor := common.NewFileProcessor(logger)
	resumePDF, err := fileProcessor.ReadResumePDF(args[0], int64(cfg.App.MaxFileSize))
	if err != nil {
		return err
	}

	complianceAIConfig := cfg.GetComplianceConfig()
	aiService, err := ai.NewService(&complianceAIConfig, "compliance", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	extractor := extract.New(cfg.Extract, logger)

	logger.Info("Starting ATS compliance check",
		"resume_file", args[0],
		"resume_bytes", len(resumePDF),
		"output_format", checkConfig.OutputFormat)

	err = common.RunCommand(
		cmd.Context(),
		logger,
		checkConfig,
		func(ctx context.Context) (types.ComplianceResult, error) {
			extraction := extractor.Extract(ctx, resumePDF)
			result, _ := aiService.CheckCompliance(ctx, types.ComplianceInput{
				ResumeText: extraction.Text,
			})
			return result, nil
		},
	)

	if err != nil {
		return fmt.Errorf("failed to check resume compliance: %w", err)
	}
	logger.Info("ATS compliance check completed successfully")
	return nil
}
