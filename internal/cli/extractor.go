package cli

import (
	"context"

	"skillproof/internal/ai"
	"skillproof/internal/types"
)

// usageExtractor adapts an ai.Service into a skill extractor that records
// the token usage of its last extraction, so commands can report it.
type usageExtractor struct {
	svc   *ai.Service
	usage *ai.TokenUsage
}

func (e *usageExtractor) ExtractSkills(ctx context.Context, input types.ExtractSkillsInput) (*types.ExtractSkillsOutput, error) {
	output, usage, err := e.svc.ExtractSkillsWithUsage(ctx, input)
	if usage != nil {
		e.usage = usage
	}
	return output, err
}
