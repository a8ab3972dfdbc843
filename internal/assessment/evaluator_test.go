package assessment

import (
	"context"
	"testing"

	apperrors "skillproof/internal/errors"
	"skillproof/internal/types"
)

func intPtr(v int) *int { return &v }

// generateTest builds a stored claim test for the given skills
func generateTest(t *testing.T, skills []string) (*types.GenerateTestOutput, *Evaluator) {
	t.Helper()

	store := NewMemoryStore()
	catalog := NewCatalog()
	gen := NewGenerator(&stubExtractor{skills: skills}, store, catalog, nil)

	out, err := gen.Generate(context.Background(), types.GenerateTestInput{ResumeText: "resume"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	return out, NewEvaluator(store, catalog, nil)
}

// answerAll answers every question with the given option index
func answerAll(out *types.GenerateTestOutput, option int) []types.Answer {
	answers := make([]types.Answer, 0, len(out.Questions))
	for _, q := range out.Questions {
		answers = append(answers, types.Answer{QuestionID: q.ID, SelectedOption: intPtr(option)})
	}
	return answers
}

func TestEvaluateUnknownTestID(t *testing.T) {
	_, evaluator := generateTest(t, []string{"Go"})

	_, err := evaluator.Evaluate(types.EvaluateTestInput{TestID: "test_missing"})
	if err == nil {
		t.Fatal("expected error for unknown test id")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeTestNotFound {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.ErrCodeTestNotFound)
	}
	if appErr.Message != "Invalid testId or test expired. Please generate a new test." {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
}

func TestEvaluateNotAttempted(t *testing.T) {
	out, evaluator := generateTest(t, []string{"Node", "SQL"})

	tests := []struct {
		name    string
		answers []types.Answer
	}{
		{"no answers", nil},
		{"nil selections", []types.Answer{{QuestionID: out.Questions[0].ID}}},
		{"negative selections", []types.Answer{{QuestionID: out.Questions[0].ID, SelectedOption: intPtr(-1)}}},
		{"unknown question ids", []types.Answer{{QuestionID: "q_unknown", SelectedOption: intPtr(0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := evaluator.Evaluate(types.EvaluateTestInput{TestID: out.TestID, Answers: tt.answers})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ClaimStatus != types.ClaimNotAttempted {
				t.Errorf("claim status = %q, want not_attempted", result.ClaimStatus)
			}
			if result.AuthenticityScore != 0 {
				t.Errorf("authenticity = %d, want 0", result.AuthenticityScore)
			}
			if len(result.SkillBreakdown) != 0 || len(result.Shortlist) != 0 {
				t.Errorf("expected empty breakdown and shortlist, got %+v", result)
			}
		})
	}
}

func TestEvaluateAllCorrect(t *testing.T) {
	out, evaluator := generateTest(t, []string{"Node", "SQL"})

	result, err := evaluator.Evaluate(types.EvaluateTestInput{
		TestID:  out.TestID,
		Answers: answerAll(out, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AuthenticityScore != 100 {
		t.Errorf("authenticity = %d, want 100", result.AuthenticityScore)
	}
	if result.ClaimStatus != types.ClaimStronglyVerified {
		t.Errorf("claim status = %q, want strongly_verified", result.ClaimStatus)
	}
	if len(result.SkillBreakdown) != 2 {
		t.Fatalf("breakdown has %d entries, want 2", len(result.SkillBreakdown))
	}
	for _, entry := range result.SkillBreakdown {
		if entry.Score != 100 {
			t.Errorf("skill %q score = %d, want 100", entry.Skill, entry.Score)
		}
	}
	if len(result.Shortlist) == 0 {
		t.Fatal("expected non-empty shortlist")
	}
	for _, entry := range result.Shortlist {
		if entry.ClaimCoverage <= 0 {
			t.Errorf("shortlist entry %q has claim coverage %d, want > 0", entry.CompanyID, entry.ClaimCoverage)
		}
	}
}

func TestEvaluateMixedSkills(t *testing.T) {
	out, evaluator := generateTest(t, []string{"Node", "SQL"})

	// Node fully correct, SQL fully wrong.
	answers := make([]types.Answer, 0, len(out.Questions))
	for _, q := range out.Questions {
		option := 0
		if q.Skill == "SQL" {
			option = 1
		}
		answers = append(answers, types.Answer{QuestionID: q.ID, SelectedOption: intPtr(option)})
	}

	result, err := evaluator.Evaluate(types.EvaluateTestInput{TestID: out.TestID, Answers: answers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AuthenticityScore != 50 {
		t.Errorf("authenticity = %d, want 50", result.AuthenticityScore)
	}
	if result.ClaimStatus != types.ClaimPartiallyVerified {
		t.Errorf("claim status = %q, want partially_verified", result.ClaimStatus)
	}
}

func TestEvaluateUnansweredSkipped(t *testing.T) {
	out, evaluator := generateTest(t, []string{"Node", "SQL"})

	// Answer only the first Node question, correctly. The unanswered Node
	// question is excluded from Node's total weight, so Node scores 100,
	// while SQL (claimed, never answered) contributes 0 to the average.
	var nodeQuestion string
	for _, q := range out.Questions {
		if q.Skill == "Node" {
			nodeQuestion = q.ID
			break
		}
	}

	result, err := evaluator.Evaluate(types.EvaluateTestInput{
		TestID:  out.TestID,
		Answers: []types.Answer{{QuestionID: nodeQuestion, SelectedOption: intPtr(0)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.SkillBreakdown) != 1 {
		t.Fatalf("breakdown has %d entries, want 1", len(result.SkillBreakdown))
	}
	if result.SkillBreakdown[0].Skill != "Node" || result.SkillBreakdown[0].Score != 100 {
		t.Errorf("breakdown = %+v, want Node 100", result.SkillBreakdown[0])
	}
	if result.AuthenticityScore != 50 {
		t.Errorf("authenticity = %d, want 50", result.AuthenticityScore)
	}
}

func TestEvaluateRepeatable(t *testing.T) {
	out, evaluator := generateTest(t, []string{"Go"})

	first, err := evaluator.Evaluate(types.EvaluateTestInput{TestID: out.TestID, Answers: answerAll(out, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := evaluator.Evaluate(types.EvaluateTestInput{TestID: out.TestID, Answers: answerAll(out, 1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.AuthenticityScore != 100 {
		t.Errorf("first authenticity = %d, want 100", first.AuthenticityScore)
	}
	if second.AuthenticityScore != 0 {
		t.Errorf("second authenticity = %d, want 0", second.AuthenticityScore)
	}
}

func TestEvaluateCompanyOverride(t *testing.T) {
	store := NewMemoryStore()
	catalog := NewCatalog()
	gen := NewGenerator(&stubExtractor{skills: []string{"Python", "SQL"}}, store, catalog, nil)

	out, err := gen.Generate(context.Background(), types.GenerateTestInput{
		ResumeText: "resume",
		CompanyIDs: []string{"code-orbit"},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	evaluator := NewEvaluator(store, catalog, nil)

	// Request-time ids override the ids captured at generation time.
	result, err := evaluator.Evaluate(types.EvaluateTestInput{
		TestID:     out.TestID,
		Answers:    answerAll(out, 0),
		CompanyIDs: []string{"data-sphere"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Shortlist) != 1 || result.Shortlist[0].CompanyID != "data-sphere" {
		t.Fatalf("shortlist = %+v, want only data-sphere", result.Shortlist)
	}
	// Python and SQL carry 60 of DataSphere's 100 total weight.
	if result.Shortlist[0].FitScore != 60 {
		t.Errorf("fit score = %d, want 60", result.Shortlist[0].FitScore)
	}
}
