package ai

import (
	"context"
	"fmt"
	"testing"

	apperrors "skillproof/internal/errors"
)

func TestClassifyGenerationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: apperrors.ErrCodeAITimeout,
		},
		{
			name: "wrapped deadline exceeded",
			err:  fmt.Errorf("operation 'extract_skills' failed after 3 retries: %w", context.DeadlineExceeded),
			want: apperrors.ErrCodeAITimeout,
		},
		{
			name: "provider failure",
			err:  fmt.Errorf("model not found"),
			want: apperrors.ErrCodeAIServiceFailed,
		},
		{
			name: "canceled context",
			err:  context.Canceled,
			want: apperrors.ErrCodeAIServiceFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyGenerationError(tt.err); got != tt.want {
				t.Errorf("classifyGenerationError(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}
