package cli

import (
	"context"
	"fmt"

	"skillproof/internal/ai"
	"skillproof/internal/assessment"
	"skillproof/internal/common"
	"skillproof/internal/types"

	"github.com/spf13/cobra"
)

var claimtestCmd = &cobra.Command{
	Use:   "claimtest [resume-file]",
	Short: "Generate a claim test from a resume",
	Long: `Generate a multiple-choice claim test probing the skills a resume claims.
The resume may be a plain text file or a PDF.

The generated test hides answer keys; grading happens through the serve
mode's submit endpoint, which holds test sessions between requests. Use
--company to restrict the eventual employer shortlist to specific catalog
entries.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if claimtestConfig.OutputFormat == "" {
			claimtestConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(claimtestConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runClaimtest,
}

var (
	claimtestConfig    common.CommandConfig
	claimtestCompanies []string
)

func init() {
	claimtestCmd.Flags().StringVarP(&claimtestConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	claimtestCmd.Flags().StringVar(&claimtestConfig.OutputFormat, "format", "", "Output format: json or text")
	claimtestCmd.Flags().StringSliceVarP(&claimtestCompanies, "company", "c", nil, "Company IDs to target from the employer catalog (comma-separated)")

	// Add completion for format flag
	_ = claimtestCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runClaimtest(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	aiService, err := ai.NewService(&cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() { _ = aiService.Close() }()

	catalog := assessment.NewCatalog()
	if cfg.Catalog.Path != "" {
		catalog, err = assessment.NewCatalogFromFile(cfg.Catalog.Path, logger)
		if err != nil {
			return fmt.Errorf("failed to load employer catalog: %w", err)
		}
	}

	extractor := &usageExtractor{svc: aiService}
	generator := assessment.NewGenerator(extractor, assessment.NewMemoryStore(), catalog, logger)

	createInput := func(contents []string) (types.GenerateTestInput, error) {
		if len(contents) != 1 {
			return types.GenerateTestInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.GenerateTestInput{
			ResumeText: contents[0],
			CompanyIDs: claimtestCompanies,
		}, nil
	}

	logDetails := func(input types.GenerateTestInput, cfg common.CommandConfig) {
		logger.Info("Starting claim test generation",
			"resume_chars", len(input.ResumeText),
			"company_ids", len(input.CompanyIDs),
			"output_format", cfg.OutputFormat)
	}

	generateOperation := func(ctx context.Context, input types.GenerateTestInput) (types.GenerateTestOutput, *ai.TokenUsage, error) {
		output, err := generator.Generate(ctx, input)
		if err != nil {
			return types.GenerateTestOutput{}, extractor.usage, err
		}
		return *output, extractor.usage, nil
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		claimtestConfig,
		args,
		createInput,
		generateOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate claim test: %w", err)
	}
	logger.Info("Claim test generation completed successfully")
	return nil
}
