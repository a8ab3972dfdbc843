package ai

import (
	"context"
	"strings"

	"skillproof/internal/types"
)

// FallbackSkills is the fixed vocabulary used for offline keyword extraction
var FallbackSkills = []string{
	"JavaScript",
	"TypeScript",
	"React",
	"Node",
	"Express",
	"MongoDB",
	"SQL",
	"Python",
	"Java",
	"C++",
	"AWS",
	"Docker",
	"Kubernetes",
	"System Design",
	"DSA",
	"REST API",
	"Git",
}

// Generic suggestion strings per degradation mode. Distinct texts make the
// active fallback path visible in responses without extra telemetry.
const (
	suggestionNoProvider    = "Add measurable project impact, highlight missing core backend/database skills, and tailor summary to the target role."
	suggestionRequestFailed = "Auto-fallback mode: improve missing required skills and add quantified project outcomes."
	suggestionMissingField  = "Improve resume clarity and add missing job-relevant skills."
)

// ExtractSkillsFallback matches the fixed vocabulary against the lowercased
// resume text. Deterministic for identical input.
func ExtractSkillsFallback(resumeText string) []string {
	lower := strings.ToLower(resumeText)

	matched := make([]string, 0, len(FallbackSkills))
	for _, skill := range FallbackSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			matched = append(matched, skill)
		}
	}
	return matched
}

// FallbackProvider is the deterministic offline AIProvider used when no AI
// credentials are configured.
type FallbackProvider struct{}

// Ensure FallbackProvider implements AIProvider
var _ AIProvider = (*FallbackProvider)(nil)

// ExtractSkills implements AIProvider using keyword matching
func (f *FallbackProvider) ExtractSkills(_ context.Context, input types.ExtractSkillsInput) (types.ExtractSkillsOutput, *TokenUsage, error) {
	return types.ExtractSkillsOutput{
		ExtractedSkills:        ExtractSkillsFallback(input.ResumeText),
		ImprovementSuggestions: suggestionNoProvider,
	}, nil, nil
}

// GetModelInfo implements AIProvider
func (f *FallbackProvider) GetModelInfo(_ context.Context) *ModelInfo {
	return &ModelInfo{
		Name:      "keyword-fallback",
		Available: true,
	}
}

// Close implements AIProvider
func (f *FallbackProvider) Close() error {
	return nil
}
