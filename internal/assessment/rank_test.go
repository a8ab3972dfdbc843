package assessment

import (
	"testing"

	"skillproof/internal/types"
)

func TestRankEmployers(t *testing.T) {
	catalog := defaultTemplates()

	t.Run("requires positive claim coverage", func(t *testing.T) {
		shortlist := RankEmployers(RankInput{
			SkillScores:   map[string]int{"node": 100, "sql": 100},
			ClaimedSkills: nil,
			Companies:     catalog,
		})
		if len(shortlist) != 0 {
			t.Fatalf("expected empty shortlist without claims, got %d entries", len(shortlist))
		}
	})

	t.Run("entries have positive claim coverage", func(t *testing.T) {
		shortlist := RankEmployers(RankInput{
			SkillScores:   map[string]int{"node": 100},
			ClaimedSkills: []string{"Node"},
			Companies:     catalog,
		})
		if len(shortlist) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(shortlist))
		}
		entry := shortlist[0]
		if entry.CompanyID != "code-orbit" {
			t.Errorf("company = %q, want code-orbit", entry.CompanyID)
		}
		if entry.ClaimCoverage <= 0 {
			t.Errorf("claim coverage = %d, want > 0", entry.ClaimCoverage)
		}
		// Node is 25 of CodeOrbit's 100 total weight.
		if entry.FitScore != 25 {
			t.Errorf("fit score = %d, want 25", entry.FitScore)
		}
		if entry.TestScore != entry.FitScore {
			t.Errorf("test score %d != fit score %d", entry.TestScore, entry.FitScore)
		}
	})

	t.Run("sorted descending by fit score", func(t *testing.T) {
		shortlist := RankEmployers(RankInput{
			SkillScores:   map[string]int{"sql": 100, "python": 100, "react": 50},
			ClaimedSkills: []string{"SQL", "Python", "React"},
			Companies:     catalog,
		})
		for i := 1; i < len(shortlist); i++ {
			if shortlist[i].FitScore > shortlist[i-1].FitScore {
				t.Fatalf("shortlist not descending at index %d: %d > %d",
					i, shortlist[i].FitScore, shortlist[i-1].FitScore)
			}
		}
		// DataSphere weights SQL and Python at 60 of 100 combined.
		if shortlist[0].CompanyID != "data-sphere" {
			t.Errorf("top entry = %q, want data-sphere", shortlist[0].CompanyID)
		}
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		companies := []types.EmployerTemplate{
			{CompanyID: "a", RequiredSkills: []types.SkillRequirement{{Skill: "Go", Weight: 10}}},
			{CompanyID: "b", RequiredSkills: []types.SkillRequirement{{Skill: "Go", Weight: 10}}},
		}
		shortlist := RankEmployers(RankInput{
			SkillScores:   map[string]int{"go": 80},
			ClaimedSkills: []string{"Go"},
			Companies:     companies,
		})
		if len(shortlist) != 2 || shortlist[0].CompanyID != "a" || shortlist[1].CompanyID != "b" {
			t.Fatalf("tie order broken: %+v", shortlist)
		}
	})

	t.Run("zero total weight does not divide by zero", func(t *testing.T) {
		companies := []types.EmployerTemplate{{CompanyID: "empty"}}
		shortlist := RankEmployers(RankInput{
			SkillScores:   map[string]int{},
			ClaimedSkills: []string{"Go"},
			Companies:     companies,
		})
		if len(shortlist) != 0 {
			t.Fatalf("expected empty shortlist, got %d entries", len(shortlist))
		}
	})
}

func TestResolveRequestedCompanies(t *testing.T) {
	catalog := defaultTemplates()

	tests := []struct {
		name        string
		ids         []string
		expectedIDs []string
	}{
		{"empty request returns full catalog", nil, []string{"code-orbit", "pixel-forge", "data-sphere"}},
		{"single match", []string{"pixel-forge"}, []string{"pixel-forge"}},
		{"normalizes case and whitespace", []string{"  Pixel-Forge "}, []string{"pixel-forge"}},
		{"unknown id falls back to full catalog", []string{"nonexistent-id"}, []string{"code-orbit", "pixel-forge", "data-sphere"}},
		{"partial match keeps only matches", []string{"data-sphere", "nonexistent-id"}, []string{"data-sphere"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := ResolveRequestedCompanies(catalog, tt.ids)
			if len(resolved) != len(tt.expectedIDs) {
				t.Fatalf("got %d companies, want %d", len(resolved), len(tt.expectedIDs))
			}
			for i, company := range resolved {
				if company.CompanyID != tt.expectedIDs[i] {
					t.Errorf("company %d = %q, want %q", i, company.CompanyID, tt.expectedIDs[i])
				}
			}
		})
	}
}
