package ai

import (
	"context"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"skillproof/internal/config"
	"skillproof/internal/errors"
	"skillproof/internal/types"
)

func timePtr(d time.Duration) *time.Duration { return &d }
func intPtr(i int) *int                      { return &i }
func float32Ptr(f float32) *float32          { return &f }
func boolPtr(b bool) *bool                   { return &b }

var testLogger = errors.NewLogger(slog.LevelDebug)

func testAIConfig(provider, apiKey string) *config.AIConfig {
	return &config.AIConfig{
		Provider:         provider,
		Model:            "test-model",
		APIKey:           apiKey,
		Timeout:          timePtr(30 * time.Second),
		MaxRetries:       intPtr(1),
		Temperature:      float32Ptr(0.2),
		UseSystemPrompts: boolPtr(true),
	}
}

// fakeProvider returns canned output or a canned error
type fakeProvider struct {
	output types.ExtractSkillsOutput
	err    error
}

func (f *fakeProvider) ExtractSkills(_ context.Context, _ types.ExtractSkillsInput) (types.ExtractSkillsOutput, *TokenUsage, error) {
	return f.output, nil, f.err
}

func (f *fakeProvider) GetModelInfo(_ context.Context) *ModelInfo {
	return &ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func TestExtractSkillsFallback(t *testing.T) {
	tests := []struct {
		name     string
		resume   string
		expected []string
	}{
		{
			name:     "matches vocabulary case-insensitively",
			resume:   "Built services with NODE and react, stored data in MongoDB.",
			expected: []string{"React", "Node", "MongoDB"},
		},
		{
			name:     "substring match",
			resume:   "Wrote JavaScript for years.",
			expected: []string{"JavaScript", "Java"},
		},
		{
			name:     "no matches",
			resume:   "Managed a bakery.",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSkillsFallback(tt.resume)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractSkillsFallback() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewService(t *testing.T) {
	t.Run("fallback provider", func(t *testing.T) {
		service, err := NewService(testAIConfig("fallback", ""), testLogger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := service.Provider.(*FallbackProvider); !ok {
			t.Errorf("provider = %T, want *FallbackProvider", service.Provider)
		}
	})

	t.Run("gemini without api key degrades to fallback", func(t *testing.T) {
		service, err := NewService(testAIConfig("gemini", ""), testLogger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := service.Provider.(*FallbackProvider); !ok {
			t.Errorf("provider = %T, want *FallbackProvider", service.Provider)
		}
	})

	t.Run("unsupported provider", func(t *testing.T) {
		if _, err := NewService(testAIConfig("openai", "key"), testLogger); err == nil {
			t.Fatal("expected error for unsupported provider")
		}
	})
}

func TestServiceExtractSkills(t *testing.T) {
	newService := func(provider AIProvider) *Service {
		return &Service{
			Provider: provider,
			config:   testAIConfig("gemini", "key"),
			logger:   testLogger,
		}
	}

	t.Run("empty resume text is rejected", func(t *testing.T) {
		service := newService(&fakeProvider{})
		if _, err := service.ExtractSkills(context.Background(), types.ExtractSkillsInput{ResumeText: "  "}); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("provider failure degrades to keyword fallback", func(t *testing.T) {
		service := newService(&fakeProvider{err: errors.NewAIError("AI_SERVICE_FAILED", "down", nil)})

		out, err := service.ExtractSkills(context.Background(), types.ExtractSkillsInput{
			ResumeText: "Experienced with Docker and SQL.",
		})
		if err != nil {
			t.Fatalf("provider failure must not surface, got %v", err)
		}
		if !reflect.DeepEqual(out.ExtractedSkills, []string{"SQL", "Docker"}) {
			t.Errorf("extracted = %v, want [SQL Docker]", out.ExtractedSkills)
		}
		if out.ImprovementSuggestions != suggestionRequestFailed {
			t.Errorf("suggestions = %q, want request-failed text", out.ImprovementSuggestions)
		}
	})

	t.Run("blank skill entries are dropped", func(t *testing.T) {
		service := newService(&fakeProvider{output: types.ExtractSkillsOutput{
			ExtractedSkills:        []string{"Go", "", "  ", "SQL"},
			ImprovementSuggestions: "looks fine",
		}})

		out, err := service.ExtractSkills(context.Background(), types.ExtractSkillsInput{ResumeText: "resume"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(out.ExtractedSkills, []string{"Go", "SQL"}) {
			t.Errorf("extracted = %v, want [Go SQL]", out.ExtractedSkills)
		}
		if out.ImprovementSuggestions != "looks fine" {
			t.Errorf("suggestions = %q, want provider text", out.ImprovementSuggestions)
		}
	})

	t.Run("absent skill list falls back to keywords", func(t *testing.T) {
		service := newService(&fakeProvider{output: types.ExtractSkillsOutput{}})

		out, err := service.ExtractSkills(context.Background(), types.ExtractSkillsInput{
			ResumeText: "Kubernetes operator work.",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(out.ExtractedSkills, []string{"Kubernetes"}) {
			t.Errorf("extracted = %v, want [Kubernetes]", out.ExtractedSkills)
		}
		if out.ImprovementSuggestions != suggestionMissingField {
			t.Errorf("suggestions = %q, want missing-field text", out.ImprovementSuggestions)
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		service := newService(&FallbackProvider{})

		input := types.ExtractSkillsInput{ResumeText: "React and SQL projects"}
		first, err := service.ExtractSkills(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := service.ExtractSkills(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("fallback extraction should be deterministic")
		}
	})
}
