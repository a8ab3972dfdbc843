package assessment

import (
	"math"

	"skillproof/internal/errors"
	"skillproof/internal/skills"
	"skillproof/internal/types"
)

// invalidTestMessage is the user-actionable message for an unknown test id
const invalidTestMessage = "Invalid testId or test expired. Please generate a new test."

// Evaluator grades submitted claim-test answers against stored sessions
// and produces the classified result with an employer shortlist.
type Evaluator struct {
	store   SessionStore
	catalog *Catalog
	logger  *errors.Logger
}

// NewEvaluator creates a claim-test evaluator
func NewEvaluator(store SessionStore, catalog *Catalog, logger *errors.Logger) *Evaluator {
	return &Evaluator{store: store, catalog: catalog, logger: logger}
}

// skillAccumulator tracks graded weight per normalized skill
type skillAccumulator struct {
	skill       string
	score       int
	totalWeight int
}

// Evaluate grades an answer set. Unanswered questions are skipped, not
// scored as wrong: they contribute to neither a skill's total weight nor
// its score. The authenticity score averages over claimed skills, so a
// claimed skill with no answered questions drags the average down. The
// stored session is never mutated.
func (e *Evaluator) Evaluate(input types.EvaluateTestInput) (*types.EvaluateTestOutput, error) {
	session, ok := e.store.Get(input.TestID)
	if !ok {
		return nil, errors.NewAssessmentError(errors.ErrCodeTestNotFound,
			invalidTestMessage, nil).WithContext("test_id", input.TestID)
	}

	answerMap := make(map[string]int, len(input.Answers))
	for _, answer := range input.Answers {
		if answer.SelectedOption == nil || *answer.SelectedOption < 0 {
			continue
		}
		answerMap[answer.QuestionID] = *answer.SelectedOption
	}

	// Accumulate per normalized skill, preserving question order.
	perSkill := make(map[string]*skillAccumulator)
	var skillOrder []string
	answeredCount := 0

	for _, question := range session.Questions {
		token := skills.Normalize(question.Skill)
		acc, exists := perSkill[token]
		if !exists {
			acc = &skillAccumulator{skill: question.Skill}
			perSkill[token] = acc
			skillOrder = append(skillOrder, token)
		}

		selected, answered := answerMap[question.ID]
		if !answered {
			continue
		}

		answeredCount++
		acc.totalWeight += question.Weight
		if selected == question.CorrectAnswer {
			acc.score += question.Weight
		}
	}

	if answeredCount == 0 {
		return &types.EvaluateTestOutput{
			TestID:            input.TestID,
			ClaimStatus:       types.ClaimNotAttempted,
			AuthenticityScore: 0,
			SkillBreakdown:    []types.SkillScore{},
			Shortlist:         []types.ShortlistEntry{},
		}, nil
	}

	skillScores := make(map[string]int, len(perSkill))
	breakdown := make([]types.SkillScore, 0, len(skillOrder))
	for _, token := range skillOrder {
		acc := perSkill[token]
		if acc.totalWeight == 0 {
			skillScores[token] = 0
			continue
		}
		score := int(math.Round(float64(acc.score) / float64(acc.totalWeight) * 100))
		skillScores[token] = score
		breakdown = append(breakdown, types.SkillScore{Skill: acc.skill, Score: score})
	}

	authenticityScore := 0
	if len(session.ClaimedSkills) > 0 {
		sum := 0
		for _, skill := range session.ClaimedSkills {
			sum += skillScores[skills.Normalize(skill)]
		}
		authenticityScore = int(math.Round(float64(sum) / float64(len(session.ClaimedSkills))))
	}

	companyIDs := input.CompanyIDs
	if len(companyIDs) == 0 {
		companyIDs = session.RequestedCompanyIDs
	}
	companies := ResolveRequestedCompanies(e.catalog.Templates(), companyIDs)

	shortlist := RankEmployers(RankInput{
		SkillScores:   skillScores,
		ClaimedSkills: session.ClaimedSkills,
		Companies:     companies,
	})

	result := &types.EvaluateTestOutput{
		TestID:            input.TestID,
		ClaimStatus:       classifyClaim(authenticityScore),
		AuthenticityScore: authenticityScore,
		SkillBreakdown:    breakdown,
		Shortlist:         shortlist,
	}

	if e.logger != nil {
		e.logger.Info("Claim test evaluated",
			"test_id", input.TestID,
			"claim_status", result.ClaimStatus,
			"authenticity_score", authenticityScore,
			"shortlist", len(shortlist))
	}
	return result, nil
}

// classifyClaim maps an authenticity score to a claim status
func classifyClaim(score int) types.ClaimStatus {
	switch {
	case score >= 75:
		return types.ClaimStronglyVerified
	case score >= 50:
		return types.ClaimPartiallyVerified
	default:
		return types.ClaimWeaklyVerified
	}
}
