package ai

import (
	"context"
	"fmt"
	"strings"

	"skillproof/internal/config"
	"skillproof/internal/errors"
	"skillproof/internal/types"
)

// Service is the skill-extraction collaborator handed to the claim-test
// engine. Provider instability is absorbed here: any provider failure is
// converted into the deterministic keyword fallback, so callers can treat
// extraction as total for well-formed input.
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.AIConfig
	logger   *errors.Logger
}

// NewService creates an AI service from configuration. When no API key is
// configured the offline keyword fallback becomes the provider.
func NewService(cfg *config.AIConfig, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			logger.Warn("No AI API key configured, using keyword fallback extraction")
			provider = &FallbackProvider{}
		} else {
			provider, err = NewGeminiProvider(cfg, logger)
		}
	case "fallback":
		provider = &FallbackProvider{}
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// ExtractSkillsWithUsage runs extraction and reports token usage. The only
// error returned is for empty resume text; provider failures degrade to the
// keyword fallback instead of propagating.
func (s *Service) ExtractSkillsWithUsage(ctx context.Context, input types.ExtractSkillsInput) (*types.ExtractSkillsOutput, *TokenUsage, error) {
	if strings.TrimSpace(input.ResumeText) == "" {
		return nil, nil, errors.NewValidationError(errors.ErrCodeEmptyResume,
			"resume text is required for AI analysis", nil)
	}

	if *s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *s.config.Timeout)
		defer cancel()
	}

	output, usage, err := s.Provider.ExtractSkills(ctx, input)
	if err != nil {
		s.logger.Warn("AI extraction failed, using keyword fallback",
			"error", err.Error())
		return &types.ExtractSkillsOutput{
			ExtractedSkills:        ExtractSkillsFallback(input.ResumeText),
			ImprovementSuggestions: suggestionRequestFailed,
		}, nil, nil
	}

	return sanitizeOutput(output, input.ResumeText), usage, nil
}

// ExtractSkills implements the claim-test engine's SkillExtractor contract
func (s *Service) ExtractSkills(ctx context.Context, input types.ExtractSkillsInput) (*types.ExtractSkillsOutput, error) {
	output, _, err := s.ExtractSkillsWithUsage(ctx, input)
	return output, err
}

// sanitizeOutput enforces the extraction contract on provider output:
// blank skill entries are dropped, an absent skill list falls back to
// keyword matching, and a missing suggestion gets the generic text. An
// empty-but-present skill list is respected as a genuine "no skills found".
func sanitizeOutput(output types.ExtractSkillsOutput, resumeText string) *types.ExtractSkillsOutput {
	var cleaned []string
	if output.ExtractedSkills == nil {
		cleaned = ExtractSkillsFallback(resumeText)
	} else {
		cleaned = make([]string, 0, len(output.ExtractedSkills))
		for _, skill := range output.ExtractedSkills {
			if strings.TrimSpace(skill) != "" {
				cleaned = append(cleaned, skill)
			}
		}
	}

	suggestions := output.ImprovementSuggestions
	if strings.TrimSpace(suggestions) == "" {
		suggestions = suggestionMissingField
	}

	return &types.ExtractSkillsOutput{
		ExtractedSkills:        cleaned,
		ImprovementSuggestions: suggestions,
	}
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

// GetCircuitBreakerStats returns breaker statistics when the provider has one
func (s *Service) GetCircuitBreakerStats() map[string]any {
	if gemini, ok := s.Provider.(*GeminiProvider); ok {
		return gemini.GetCircuitBreakerStats()
	}
	return map[string]any{"enabled": false}
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.Provider.Close()
}
