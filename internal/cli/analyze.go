package cli

import (
	"context"
	"fmt"
	"slices"

	"resumelens/internal/common"
	"resumelens/internal/pipeline"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-pdf] [job-description-file]",
	Short: "Analyze a PDF resume",
	Long: `Analyze a PDF resume and produce a skills assessment, improvement
recommendations, and an ATS compliance check. When a job description file is
provided, the analysis also compares the resume against its requirements.

Scanned resumes without a text layer are read via OCR. Resumes in a language
other than the configured target language are translated before analysis.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

var (
	analyzeLanguage string
	analyzeDepth    string
	analyzeReports  bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "Resume language hint (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeDepth, "depth", "", "Analysis depth label (default: first configured)")
	analyzeCmd.Flags().BoolVar(&analyzeReports, "reports", false, "Write PDF and DOCX report artifacts")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = analyzeCmd.RegisterFlagCompletionFunc("language", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return cfg.App.Languages, cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	language := analyzeLanguage
	if language == "" {
		language = cfg.App.TargetLanguage
	}
	if len(cfg.App.Languages) > 0 && !slices.Contains(cfg.App.Languages, language) {
		return fmt.Errorf("unsupported language '%s'. Supported languages: %v",
			language, cfg.App.Languages)
	}

	fileProcessor := common.NewFileProcessor(logger)
	resumePDF, err := fileProcessor.ReadResumePDF(args[0], int64(cfg.App.MaxFileSize))
	if err != nil {
		return err
	}

	var jobDescription string
	if len(args) == 2 {
		contents, err := fileProcessor.ValidateAndReadFiles(args[1])
		if err != nil {
			return err
		}
		jobDescription = contents[0]
	}

	p, _, err := pipeline.NewFromConfig(cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("failed to create analysis pipeline: %w", err)
	}

	logger.Info("Starting resume analysis",
		"resume_file", args[0],
		"resume_bytes", len(resumePDF),
		"has_job_description", jobDescription != "",
		"language", language,
		"output_format", analyzeConfig.OutputFormat)

	err = common.RunCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		func(ctx context.Context) (*pipeline.Result, error) {
			return p.Run(ctx, pipeline.Input{
				ResumePDF:       resumePDF,
				JobDescription:  jobDescription,
				Language:        language,
				Depth:           analyzeDepth,
				GenerateReports: analyzeReports,
			})
		},
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
