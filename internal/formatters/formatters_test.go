package formatters

import (
	"strings"
	"testing"

	"skillproof/internal/types"
)

func TestJSONFormatterAnyType(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, `"key": "value"`) {
		t.Errorf("expected JSON output to contain key, got: %s", output)
	}
}

func TestAnalyzeTextFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	result := types.AnalyzeResumeOutput{
		Score:                  67,
		ExtractedSkills:        []string{"React", "MongoDB"},
		MatchedSkills:          []string{"React", "MongoDB"},
		MissingSkills:          []string{"Kafka"},
		ImprovementSuggestions: "Add Kafka experience.",
	}

	output, err := registry.Format(result, "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Match Score: 67/100", "- React", "- Kafka", "Add Kafka experience."} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestAnalyzeMarkdownFormatterEmptySkills(t *testing.T) {
	registry := NewFormatterRegistry()

	result := types.AnalyzeResumeOutput{Score: 0}

	output, err := registry.Format(result, "markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "# Resume Analysis") {
		t.Errorf("expected markdown heading, got:\n%s", output)
	}
	if !strings.Contains(output, "_None_") {
		t.Errorf("expected empty skill lists to render as _None_, got:\n%s", output)
	}
}

func TestProfileTextFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	result := types.ParseProfileOutput{
		Profile: types.CandidateProfile{
			Headline:          "Backend Developer",
			YearsOfExperience: 6,
			Summary:           "Builds Node and SQL services.",
		},
		Analysis: types.AnalyzeResumeOutput{
			Score:         50,
			MatchedSkills: []string{"Node"},
			MissingSkills: []string{"Kafka"},
		},
	}

	output, err := registry.Format(result, "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Headline: Backend Developer", "Years of Experience: 6", "Match Score: 50/100"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestClaimTestTextFormatterHidesNothingItShouldNot(t *testing.T) {
	registry := NewFormatterRegistry()

	result := types.GenerateTestOutput{
		TestID:        "test-123",
		ClaimedSkills: []string{"React"},
		QuestionCount: 1,
		Questions: []types.PublicQuestion{
			{
				ID:      "q1",
				Skill:   "React",
				Type:    "multiple_choice",
				Prompt:  "What does JSX compile to?",
				Options: []string{"Function calls", "HTML strings", "CSS rules"},
				Weight:  1,
			},
		},
	}

	output, err := registry.Format(result, "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Test ID: test-123", "1. [React] What does JSX compile to?", "a) Function calls", "c) CSS rules"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestEvaluationTextFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	result := types.EvaluateTestOutput{
		TestID:            "test-123",
		ClaimStatus:       types.ClaimStronglyVerified,
		AuthenticityScore: 92,
		SkillBreakdown: []types.SkillScore{
			{Skill: "React", Score: 100},
			{Skill: "MongoDB", Score: 80},
		},
		Shortlist: []types.ShortlistEntry{
			{CompanyID: "acme", CompanyName: "Acme", Role: "Frontend Engineer", FitScore: 88, TestScore: 92, ClaimCoverage: 75},
		},
	}

	output, err := registry.Format(result, "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Claim Status: strongly_verified",
		"Authenticity Score: 92/100",
		"React: 100/100",
		"1. Acme - Frontend Engineer (fit: 88, coverage: 75%)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	_, err := registry.Format(types.AnalyzeResumeOutput{}, "xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestMarkdownFallsBackToJSONForUnregisteredType(t *testing.T) {
	registry := NewFormatterRegistry()
	registry.RegisterFormatter("markdown", "any", &JSONFormatter{})

	output, err := registry.Format(types.GenerateTestOutput{TestID: "t"}, "markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, `"testId": "t"`) {
		t.Errorf("expected JSON fallback output, got:\n%s", output)
	}
}
