package assessment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"skillproof/internal/errors"
	"skillproof/internal/skills"
	"skillproof/internal/types"
)

// maxClaimedSkills bounds the claimed-skill list fed into question generation
const maxClaimedSkills = 8

// SkillExtractor is the AI collaborator contract. Implementations must not
// fail for well-formed input; internal failures are absorbed into a
// deterministic fallback extraction.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, input types.ExtractSkillsInput) (*types.ExtractSkillsOutput, error)
}

// Generator orchestrates claim-test creation: skill extraction, fallback
// resolution, question building, and session storage.
type Generator struct {
	extractor SkillExtractor
	store     SessionStore
	catalog   *Catalog
	logger    *errors.Logger
}

// NewGenerator creates a claim-test generator
func NewGenerator(extractor SkillExtractor, store SessionStore, catalog *Catalog, logger *errors.Logger) *Generator {
	return &Generator{
		extractor: extractor,
		store:     store,
		catalog:   catalog,
		logger:    logger,
	}
}

// Generate builds a claim test from resume text. The claimed-skill set is
// derived from AI extraction with two fallback levels: required skills of
// the requested employer templates, then a fixed default list. The stored
// session keeps the answer keys; the returned view is redacted.
func (g *Generator) Generate(ctx context.Context, input types.GenerateTestInput) (*types.GenerateTestOutput, error) {
	if strings.TrimSpace(input.ResumeText) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeEmptyResume,
			"resume text is required to generate a claim test", nil)
	}

	aiResult, err := g.extractor.ExtractSkills(ctx, types.ExtractSkillsInput{
		ResumeText: input.ResumeText,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeExtractionFailed,
			"skill extraction failed", err)
	}

	claimedSkills := g.resolveClaimedSkills(aiResult.ExtractedSkills, input.CompanyIDs)

	questions := make([]types.Question, 0, len(claimedSkills)*2)
	for _, skill := range claimedSkills {
		questions = append(questions, BuildQuestionsForSkill(skill)...)
	}

	session := types.TestSession{
		TestID:              "test_" + uuid.NewString(),
		CreatedAt:           time.Now().UTC(),
		ClaimedSkills:       claimedSkills,
		Questions:           questions,
		RequestedCompanyIDs: input.CompanyIDs,
	}
	g.store.Put(session)

	if g.logger != nil {
		g.logger.Info("Claim test generated",
			"test_id", session.TestID,
			"claimed_skills", len(claimedSkills),
			"questions", len(questions))
	}

	return &types.GenerateTestOutput{
		TestID:        session.TestID,
		ClaimedSkills: claimedSkills,
		QuestionCount: len(questions),
		Questions:     RedactAll(questions),
	}, nil
}

// resolveClaimedSkills applies the fallback chain: deduplicated extraction,
// then the deduplicated union of required skills across the requested
// templates, then the fixed default list. The result is truncated to
// maxClaimedSkills and never empty.
func (g *Generator) resolveClaimedSkills(extracted []string, companyIDs []string) []string {
	claimed := skills.Dedupe(extracted)

	if len(claimed) == 0 {
		companies := ResolveRequestedCompanies(g.catalog.Templates(), companyIDs)
		var required []string
		for _, company := range companies {
			for _, req := range company.RequiredSkills {
				required = append(required, req.Skill)
			}
		}
		claimed = skills.Dedupe(required)
	}

	if len(claimed) == 0 {
		claimed = append([]string{}, DefaultTestSkills...)
	}

	if len(claimed) > maxClaimedSkills {
		claimed = claimed[:maxClaimedSkills]
	}
	return claimed
}
