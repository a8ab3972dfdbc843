package assessment

import (
	"fmt"

	"github.com/google/uuid"
	"skillproof/internal/skills"
	"skillproof/internal/types"
)

const questionWeight = 50

// BuildQuestionsForSkill produces the two graded multiple-choice questions
// used to verify one claimed skill. The first question is replaced by a
// curated prompt for a small set of skills; the rest are generic templates
// parameterized by the display name. The correct option is always placed
// first; options are served in stored order without shuffling, so the
// stored answer index stays valid.
func BuildQuestionsForSkill(skill string) []types.Question {
	key := skills.Normalize(skill)
	pretty := skills.TitleCase(skill)

	questions := []types.Question{
		{
			Type:   "mcq",
			Prompt: fmt.Sprintf("Which statement best explains a real-world use of %s?", pretty),
			Options: []string{
				fmt.Sprintf("Applying %s to solve production-level problems with measurable outcomes", pretty),
				fmt.Sprintf("%s is only for writing comments and documentation", pretty),
				fmt.Sprintf("%s cannot be used in team projects", pretty),
				fmt.Sprintf("%s is unrelated to software/product delivery", pretty),
			},
			CorrectAnswer: 0,
			Weight:        questionWeight,
		},
		{
			Type:   "mcq",
			Prompt: fmt.Sprintf("You claimed %s in your resume. Which behavior shows practical proficiency?", pretty),
			Options: []string{
				"Can explain tradeoffs, debug issues, and deliver small features independently",
				"Has heard the name but never used it",
				"Only copied examples without understanding",
				fmt.Sprintf("Avoids tasks involving %s", pretty),
			},
			CorrectAnswer: 0,
			Weight:        questionWeight,
		},
	}

	if curated, ok := curatedFirstQuestions[key]; ok {
		questions[0] = curated
	}

	for i := range questions {
		questions[i].ID = "q_" + uuid.NewString()
		questions[i].Skill = pretty
	}
	return questions
}

// curatedFirstQuestions holds skill-specific replacements for the first
// generic question.
var curatedFirstQuestions = map[string]types.Question{
	"sql": {
		Type:   "mcq",
		Prompt: "Which SQL query returns employees with salary > 50000 sorted descending?",
		Options: []string{
			"SELECT * FROM employees WHERE salary > 50000 ORDER BY salary DESC;",
			"SELECT employees salary > 50000 SORT DESC;",
			"FETCH employees BY salary DESC IF salary > 50000;",
			"ORDER employees DESC WHERE salary > 50000;",
		},
		CorrectAnswer: 0,
		Weight:        questionWeight,
	},
	"react": {
		Type:          "mcq",
		Prompt:        "In React, which hook is typically used for local component state?",
		Options:       []string{"useState", "useContextProvider", "setInterval", "useRoute"},
		CorrectAnswer: 0,
		Weight:        questionWeight,
	},
	"node": {
		Type:   "mcq",
		Prompt: "What is Node.js primarily used for?",
		Options: []string{
			"Running JavaScript on the server/runtime environment",
			"Styling HTML pages",
			"Designing logos",
			"Creating spreadsheet formulas",
		},
		CorrectAnswer: 0,
		Weight:        questionWeight,
	},
}

// Redact strips the answer key from a question before it leaves the process
func Redact(q types.Question) types.PublicQuestion {
	return types.PublicQuestion{
		ID:      q.ID,
		Skill:   q.Skill,
		Type:    q.Type,
		Prompt:  q.Prompt,
		Options: q.Options,
		Weight:  q.Weight,
	}
}

// RedactAll applies Redact to every question in order
func RedactAll(questions []types.Question) []types.PublicQuestion {
	out := make([]types.PublicQuestion, len(questions))
	for i, q := range questions {
		out[i] = Redact(q)
	}
	return out
}
