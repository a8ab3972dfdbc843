// Package analysis compares extracted resume skills against a target
// skill set and parses pasted profile text into a structured form.
package analysis

import (
	"math"
	"strings"
)

// DefaultRequiredSkills is used when a caller does not name a target
// skill set.
var DefaultRequiredSkills = []string{"React", "Node", "MongoDB", "System Design"}

// SkillMatch is the outcome of comparing resume skills with required ones.
type SkillMatch struct {
	RequiredSkills []string
	MatchedSkills  []string
	MissingSkills  []string
}

// ComputeSkillMatch splits the required skills into matched and missing
// based on a case-insensitive comparison with the resume skills.
func ComputeSkillMatch(resumeSkills, requiredSkills []string) SkillMatch {
	cleanRequired := make([]string, 0, len(requiredSkills))
	for _, skill := range requiredSkills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			cleanRequired = append(cleanRequired, trimmed)
		}
	}
	if len(cleanRequired) == 0 {
		cleanRequired = append(cleanRequired, DefaultRequiredSkills...)
	}

	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		resumeSet[normalize(skill)] = struct{}{}
	}

	matched := make([]string, 0, len(cleanRequired))
	missing := make([]string, 0, len(cleanRequired))
	for _, skill := range cleanRequired {
		if _, ok := resumeSet[normalize(skill)]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	return SkillMatch{
		RequiredSkills: cleanRequired,
		MatchedSkills:  matched,
		MissingSkills:  missing,
	}
}

// Score converts a match ratio into a 0-100 integer score.
func Score(matchedCount, totalRequired int) int {
	if totalRequired <= 0 {
		return 0
	}
	return int(math.Round(float64(matchedCount) / float64(totalRequired) * 100))
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
