package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"testing"

	"skillproof/internal/errors"
	"skillproof/internal/types"
)

var testLogger = errors.NewLogger(slog.LevelDebug)

type stubExtractor struct {
	output *types.ExtractSkillsOutput
	err    error
}

func (s *stubExtractor) ExtractSkills(_ context.Context, _ types.ExtractSkillsInput) (*types.ExtractSkillsOutput, error) {
	return s.output, s.err
}

func TestAnalyzeResume(t *testing.T) {
	analyzer := NewAnalyzer(&stubExtractor{
		output: &types.ExtractSkillsOutput{
			ExtractedSkills:        []string{"React", "SQL"},
			ImprovementSuggestions: "Add measurable outcomes.",
		},
	}, testLogger)

	out, err := analyzer.AnalyzeResume(context.Background(), types.AnalyzeResumeInput{
		ResumeText:     "Frontend developer with React and SQL experience.",
		RequiredSkills: []string{"React", "Node", "SQL", "CSS"},
	})
	if err != nil {
		t.Fatalf("AnalyzeResume returned error: %v", err)
	}

	if out.Score != 50 {
		t.Errorf("score = %d, want 50", out.Score)
	}
	if !reflect.DeepEqual(out.MatchedSkills, []string{"React", "SQL"}) {
		t.Errorf("matched = %v", out.MatchedSkills)
	}
	if !reflect.DeepEqual(out.MissingSkills, []string{"Node", "CSS"}) {
		t.Errorf("missing = %v", out.MissingSkills)
	}
	if out.ImprovementSuggestions != "Add measurable outcomes." {
		t.Errorf("suggestions = %q", out.ImprovementSuggestions)
	}
}

func TestAnalyzeResumeDefaultsRequiredSkills(t *testing.T) {
	analyzer := NewAnalyzer(&stubExtractor{
		output: &types.ExtractSkillsOutput{ExtractedSkills: []string{"React", "Node", "MongoDB", "System Design"}},
	}, testLogger)

	out, err := analyzer.AnalyzeResume(context.Background(), types.AnalyzeResumeInput{
		ResumeText: "Full-stack profile.",
	})
	if err != nil {
		t.Fatalf("AnalyzeResume returned error: %v", err)
	}
	if out.Score != 100 {
		t.Errorf("score = %d, want 100 against default required skills", out.Score)
	}
}

func TestAnalyzeResumeEmptyText(t *testing.T) {
	analyzer := NewAnalyzer(&stubExtractor{}, testLogger)

	_, err := analyzer.AnalyzeResume(context.Background(), types.AnalyzeResumeInput{ResumeText: "   "})
	if err == nil {
		t.Fatal("expected error for blank resume text")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeEmptyResume {
		t.Errorf("code = %q, want %q", appErr.Code, errors.ErrCodeEmptyResume)
	}
}

func TestAnalyzeResumeExtractorFailure(t *testing.T) {
	analyzer := NewAnalyzer(&stubExtractor{err: fmt.Errorf("provider down")}, testLogger)

	_, err := analyzer.AnalyzeResume(context.Background(), types.AnalyzeResumeInput{ResumeText: "resume"})
	if err == nil {
		t.Fatal("expected error when extraction fails")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeExtractionFailed {
		t.Errorf("code = %q, want %q", appErr.Code, errors.ErrCodeExtractionFailed)
	}
}

func TestParseProfileEndToEnd(t *testing.T) {
	analyzer := NewAnalyzer(&stubExtractor{
		output: &types.ExtractSkillsOutput{
			ExtractedSkills:        []string{"Python", "SQL"},
			ImprovementSuggestions: "Highlight leadership.",
		},
	}, testLogger)

	out, err := analyzer.ParseProfile(context.Background(), types.ParseProfileInput{
		ProfileText:    "Data Analyst\n6 years turning data into decisions with Python and SQL.",
		RequiredSkills: []string{"Python", "SQL", "Excel"},
	})
	if err != nil {
		t.Fatalf("ParseProfile returned error: %v", err)
	}

	if out.Profile.Headline != "Data Analyst" {
		t.Errorf("headline = %q", out.Profile.Headline)
	}
	if out.Profile.YearsOfExperience != 6 {
		t.Errorf("years = %d, want 6", out.Profile.YearsOfExperience)
	}
	if out.Analysis.Score != 67 {
		t.Errorf("score = %d, want 67", out.Analysis.Score)
	}
	if !reflect.DeepEqual(out.Analysis.MissingSkills, []string{"Excel"}) {
		t.Errorf("missing = %v", out.Analysis.MissingSkills)
	}
}

func TestAnalyzerParseProfileEmptyText(t *testing.T) {
	analyzer := NewAnalyzer(&stubExtractor{}, testLogger)

	_, err := analyzer.ParseProfile(context.Background(), types.ParseProfileInput{ProfileText: ""})
	if err == nil {
		t.Fatal("expected error for empty profile text")
	}
}
