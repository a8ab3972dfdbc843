package assessment

import (
	"strings"
	"testing"
)

func TestBuildQuestionsForSkill(t *testing.T) {
	tests := []struct {
		name          string
		skill         string
		expectCurated bool
	}{
		{"generic skill", "Kubernetes", false},
		{"curated sql", "SQL", true},
		{"curated react lowercase", "react", true},
		{"curated node with punctuation", "Node.js", false},
		{"curated node", "Node", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := BuildQuestionsForSkill(tt.skill)

			if len(questions) != 2 {
				t.Fatalf("expected 2 questions, got %d", len(questions))
			}

			totalWeight := 0
			for i, q := range questions {
				if q.ID == "" {
					t.Errorf("question %d has empty id", i)
				}
				if q.Type != "mcq" {
					t.Errorf("question %d type = %q, want mcq", i, q.Type)
				}
				if q.Weight != 50 {
					t.Errorf("question %d weight = %d, want 50", i, q.Weight)
				}
				if q.CorrectAnswer != 0 {
					t.Errorf("question %d correct answer = %d, want 0", i, q.CorrectAnswer)
				}
				if len(q.Options) != 4 {
					t.Errorf("question %d has %d options, want 4", i, len(q.Options))
				}
				totalWeight += q.Weight
			}
			if totalWeight != 100 {
				t.Errorf("skill total weight = %d, want 100", totalWeight)
			}

			isGenericFirst := strings.Contains(questions[0].Prompt, "real-world use")
			if tt.expectCurated && isGenericFirst {
				t.Errorf("expected curated first question for %q, got generic", tt.skill)
			}
			if !tt.expectCurated && !isGenericFirst {
				t.Errorf("expected generic first question for %q, got %q", tt.skill, questions[0].Prompt)
			}
		})
	}
}

func TestBuildQuestionsForSkillUniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		for _, q := range BuildQuestionsForSkill("Go") {
			if _, dup := seen[q.ID]; dup {
				t.Fatalf("duplicate question id %q", q.ID)
			}
			seen[q.ID] = struct{}{}
		}
	}
}

func TestRedact(t *testing.T) {
	questions := BuildQuestionsForSkill("Python")
	public := RedactAll(questions)

	if len(public) != len(questions) {
		t.Fatalf("redacted %d questions, want %d", len(public), len(questions))
	}
	for i, p := range public {
		if p.ID != questions[i].ID || p.Skill != questions[i].Skill ||
			p.Prompt != questions[i].Prompt || p.Weight != questions[i].Weight {
			t.Errorf("redacted question %d lost a pass-through field", i)
		}
		if len(p.Options) != len(questions[i].Options) {
			t.Errorf("redacted question %d options changed", i)
		}
	}
}
