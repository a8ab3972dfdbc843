package ai

import (
	"context"

	"skillproof/internal/types"
)

// AIProvider is the contract for skill-extraction backends.
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	ExtractSkills(ctx context.Context, input types.ExtractSkillsInput) (types.ExtractSkillsOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
