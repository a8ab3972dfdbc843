package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"skillproof/internal/errors"
	"skillproof/internal/types"
)

const (
	defaultHeadline  = "LinkedIn Profile Candidate"
	maxSummaryLength = 320
	maxRoleMentions  = 10
)

var (
	explicitYears  = regexp.MustCompile(`(\d+)\+?\s+years?`)
	roleMentions   = regexp.MustCompile(`\b(intern|engineer|developer|analyst|lead|manager)\b`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// ParseProfile turns pasted profile text into a structured candidate
// profile: first non-blank line as headline, an experience estimate,
// and a truncated summary.
func ParseProfile(profileText string) (types.CandidateProfile, error) {
	normalized := cleanProfileText(profileText)
	if normalized == "" {
		return types.CandidateProfile{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"profileText is required", nil)
	}

	summary := normalized
	if runes := []rune(summary); len(runes) > maxSummaryLength {
		summary = string(runes[:maxSummaryLength-3]) + "..."
	}

	return types.CandidateProfile{
		Headline:          detectHeadline(profileText),
		YearsOfExperience: detectExperienceYears(profileText),
		Summary:           summary,
	}, nil
}

func cleanProfileText(value string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(value, " "))
}

func detectHeadline(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r")); trimmed != "" {
			return trimmed
		}
	}
	return defaultHeadline
}

// detectExperienceYears prefers an explicit "N years" mention and
// falls back to counting role words, capped at 10.
func detectExperienceYears(text string) int {
	normalized := strings.ToLower(text)

	if m := explicitYears.FindStringSubmatch(normalized); m != nil {
		years, err := strconv.Atoi(m[1])
		if err == nil {
			return years
		}
	}

	mentions := len(roleMentions.FindAllString(normalized, -1))
	if mentions > maxRoleMentions {
		return maxRoleMentions
	}
	return mentions
}
