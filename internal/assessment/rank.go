package assessment

import (
	"math"
	"sort"
	"strings"

	"skillproof/internal/skills"
	"skillproof/internal/types"
)

// RankInput carries everything the employer fit ranker needs. SkillScores
// is keyed by normalized skill token with values 0-100.
type RankInput struct {
	SkillScores   map[string]int
	ClaimedSkills []string
	Companies     []types.EmployerTemplate
}

// RankEmployers computes a ranked shortlist of employer templates. Fit is
// driven by tested proficiency weighted per requirement, but a template is
// only eligible when the candidate claimed at least one of its required
// skills. The sort is stable descending by fit score, so ties keep catalog
// order.
func RankEmployers(in RankInput) []types.ShortlistEntry {
	claimSet := skills.TokenSet(in.ClaimedSkills)

	type scored struct {
		entry        types.ShortlistEntry
		matchedCount int
	}

	results := make([]scored, 0, len(in.Companies))
	for _, company := range in.Companies {
		totalWeight := 0
		for _, req := range company.RequiredSkills {
			totalWeight += req.Weight
		}
		if totalWeight == 0 {
			totalWeight = 1
		}

		weightedTestScore := 0
		weightedClaimCoverage := 0
		matchedCount := 0

		for _, req := range company.RequiredSkills {
			token := skills.Normalize(req.Skill)
			testScore := in.SkillScores[token]

			coverage := 0
			if _, claimed := claimSet[token]; claimed {
				coverage = 100
				matchedCount++
			}

			weightedTestScore += testScore * req.Weight
			weightedClaimCoverage += coverage * req.Weight
		}

		normalizedTestScore := float64(weightedTestScore) / float64(totalWeight)
		normalizedClaimScore := float64(weightedClaimCoverage) / float64(totalWeight)

		results = append(results, scored{
			entry: types.ShortlistEntry{
				CompanyID:     company.CompanyID,
				CompanyName:   company.CompanyName,
				Role:          company.Role,
				FitScore:      int(math.Round(normalizedTestScore)),
				TestScore:     int(math.Round(normalizedTestScore)),
				ClaimCoverage: int(math.Round(normalizedClaimScore)),
			},
			matchedCount: matchedCount,
		})
	}

	shortlist := make([]types.ShortlistEntry, 0, len(results))
	for _, r := range results {
		if r.matchedCount > 0 && r.entry.ClaimCoverage > 0 {
			shortlist = append(shortlist, r.entry)
		}
	}

	sort.SliceStable(shortlist, func(i, j int) bool {
		return shortlist[i].FitScore > shortlist[j].FitScore
	})
	return shortlist
}

// ResolveRequestedCompanies filters the catalog to the requested company
// ids (case- and whitespace-insensitive). An empty request, or a request
// matching nothing, yields the entire catalog rather than an empty list.
func ResolveRequestedCompanies(catalog []types.EmployerTemplate, ids []string) []types.EmployerTemplate {
	if len(ids) == 0 {
		return catalog
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[strings.ToLower(strings.TrimSpace(id))] = struct{}{}
	}

	matched := make([]types.EmployerTemplate, 0, len(catalog))
	for _, company := range catalog {
		if _, ok := idSet[company.CompanyID]; ok {
			matched = append(matched, company)
		}
	}

	if len(matched) == 0 {
		return catalog
	}
	return matched
}
