package cli

import (
	"context"
	"fmt"

	"skillproof/internal/ai"
	"skillproof/internal/analysis"
	"skillproof/internal/common"
	"skillproof/internal/types"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile [profile-file]",
	Short: "Parse a candidate profile and analyze its skills",
	Long: `Parse a pasted candidate profile into a structured form (headline, years
of experience, summary) and run a skill-gap analysis of the profile text
against a required skill set.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if profileConfig.OutputFormat == "" {
			profileConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(profileConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runProfile,
}

var (
	profileConfig common.CommandConfig
	profileSkills []string
)

func init() {
	profileCmd.Flags().StringVarP(&profileConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	profileCmd.Flags().StringVar(&profileConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	profileCmd.Flags().StringSliceVarP(&profileSkills, "skills", "s", nil, "Required skills to match against (comma-separated)")

	// Add completion for format flag
	_ = profileCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	aiService, err := ai.NewService(&cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() { _ = aiService.Close() }()

	extractor := &usageExtractor{svc: aiService}
	analyzer := analysis.NewAnalyzer(extractor, logger)

	createInput := func(contents []string) (types.ParseProfileInput, error) {
		if len(contents) != 1 {
			return types.ParseProfileInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.ParseProfileInput{
			ProfileText:    contents[0],
			RequiredSkills: profileSkills,
		}, nil
	}

	logDetails := func(input types.ParseProfileInput, cfg common.CommandConfig) {
		logger.Info("Starting profile parsing",
			"profile_chars", len(input.ProfileText),
			"required_skills", len(input.RequiredSkills),
			"output_format", cfg.OutputFormat)
	}

	profileOperation := func(ctx context.Context, input types.ParseProfileInput) (types.ParseProfileOutput, *ai.TokenUsage, error) {
		output, err := analyzer.ParseProfile(ctx, input)
		if err != nil {
			return types.ParseProfileOutput{}, extractor.usage, err
		}
		return *output, extractor.usage, nil
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		profileConfig,
		args,
		createInput,
		profileOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}
	logger.Info("Profile parsing completed successfully")
	return nil
}
