package analysis

import (
	"context"
	"strings"

	"skillproof/internal/errors"
	"skillproof/internal/types"
)

// SkillExtractor yields the skills claimed in a resume or profile text.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, input types.ExtractSkillsInput) (*types.ExtractSkillsOutput, error)
}

// Analyzer scores resume and profile text against a target skill set.
type Analyzer struct {
	extractor SkillExtractor
	logger    *errors.Logger
}

// NewAnalyzer creates an Analyzer backed by the given skill extractor.
func NewAnalyzer(extractor SkillExtractor, logger *errors.Logger) *Analyzer {
	return &Analyzer{
		extractor: extractor,
		logger:    logger,
	}
}

// AnalyzeResume extracts skills from the resume text and reports the
// match, the gaps, and a 0-100 fit score against the required skills.
func (a *Analyzer) AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (*types.AnalyzeResumeOutput, error) {
	if strings.TrimSpace(input.ResumeText) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeEmptyResume,
			"Resume text cannot be empty", nil)
	}

	extracted, err := a.extractor.ExtractSkills(ctx, types.ExtractSkillsInput{
		ResumeText:     input.ResumeText,
		RequiredSkills: input.RequiredSkills,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeExtractionFailed,
			"Resume analysis failed", err)
	}

	match := ComputeSkillMatch(extracted.ExtractedSkills, input.RequiredSkills)
	score := Score(len(match.MatchedSkills), len(match.RequiredSkills))

	a.logger.Debug("Resume analyzed",
		"score", score,
		"extracted_skills", len(extracted.ExtractedSkills),
		"matched_skills", len(match.MatchedSkills),
		"missing_skills", len(match.MissingSkills))

	return &types.AnalyzeResumeOutput{
		Score:                  score,
		ExtractedSkills:        extracted.ExtractedSkills,
		MatchedSkills:          match.MatchedSkills,
		MissingSkills:          match.MissingSkills,
		ImprovementSuggestions: extracted.ImprovementSuggestions,
	}, nil
}

// ParseProfile parses pasted profile text and runs the same skill-gap
// analysis over it.
func (a *Analyzer) ParseProfile(ctx context.Context, input types.ParseProfileInput) (*types.ParseProfileOutput, error) {
	profile, err := ParseProfile(input.ProfileText)
	if err != nil {
		return nil, err
	}

	analysis, err := a.AnalyzeResume(ctx, types.AnalyzeResumeInput{
		ResumeText:     input.ProfileText,
		RequiredSkills: input.RequiredSkills,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Profile parsed",
		"headline", profile.Headline,
		"years_of_experience", profile.YearsOfExperience)

	return &types.ParseProfileOutput{
		Profile:  profile,
		Analysis: *analysis,
	}, nil
}
