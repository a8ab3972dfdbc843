package types

import "time"

// ExtractSkillsInput represents the input for AI skill extraction
type ExtractSkillsInput struct {
	ResumeText     string   `json:"resumeText"`
	RequiredSkills []string `json:"requiredSkills,omitempty"`
}

// ExtractSkillsOutput represents the result of AI skill extraction
type ExtractSkillsOutput struct {
	ExtractedSkills        []string `json:"extractedSkills"`
	ImprovementSuggestions string   `json:"improvementSuggestions"`
}

// Question is a graded multiple-choice question owned by exactly one skill.
// CorrectAnswer is the zero-based index of the correct option and must never
// leave the process; clients only ever see a PublicQuestion.
type Question struct {
	ID            string   `json:"id"`
	Skill         string   `json:"skill"`
	Type          string   `json:"type"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Weight        int      `json:"weight"`
}

// PublicQuestion is the answer-key-stripped view of a Question
type PublicQuestion struct {
	ID      string   `json:"id"`
	Skill   string   `json:"skill"`
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Weight  int      `json:"weight"`
}

// TestSession is a generated claim test held by the session store.
// It is never mutated after creation.
type TestSession struct {
	TestID              string     `json:"testId"`
	CreatedAt           time.Time  `json:"createdAt"`
	ClaimedSkills       []string   `json:"claimedSkills"`
	Questions           []Question `json:"questions"`
	RequestedCompanyIDs []string   `json:"requestedCompanyIds"`
}

// Answer is a caller-submitted response to one question. A negative or
// out-of-range SelectedOption means the question was left unanswered.
type Answer struct {
	QuestionID     string `json:"questionId"`
	SelectedOption *int   `json:"selectedOption"`
}

// GenerateTestInput represents the input for claim-test generation
type GenerateTestInput struct {
	ResumeText string   `json:"resumeText"`
	CompanyIDs []string `json:"companyIds,omitempty"`
}

// GenerateTestOutput is the redacted view returned from test generation
type GenerateTestOutput struct {
	TestID        string           `json:"testId"`
	ClaimedSkills []string         `json:"claimedSkills"`
	QuestionCount int              `json:"questionCount"`
	Questions     []PublicQuestion `json:"questions"`
}

// EvaluateTestInput represents a submitted answer set for grading
type EvaluateTestInput struct {
	TestID     string   `json:"testId"`
	Answers    []Answer `json:"answers"`
	CompanyIDs []string `json:"companyIds,omitempty"`
}

// ClaimStatus classifies how well quiz performance corroborates claimed skills
type ClaimStatus string

const (
	ClaimNotAttempted      ClaimStatus = "not_attempted"
	ClaimWeaklyVerified    ClaimStatus = "weakly_verified"
	ClaimPartiallyVerified ClaimStatus = "partially_verified"
	ClaimStronglyVerified  ClaimStatus = "strongly_verified"
)

// SkillScore is the per-skill entry in an evaluation breakdown
type SkillScore struct {
	Skill string `json:"skill"`
	Score int    `json:"score"`
}

// ShortlistEntry is one ranked employer match
type ShortlistEntry struct {
	CompanyID     string `json:"companyId"`
	CompanyName   string `json:"companyName"`
	Role          string `json:"role"`
	FitScore      int    `json:"fitScore"`
	TestScore     int    `json:"testScore"`
	ClaimCoverage int    `json:"claimCoverage"`
}

// EvaluateTestOutput represents the graded result of a claim test
type EvaluateTestOutput struct {
	TestID            string           `json:"testId"`
	ClaimStatus       ClaimStatus      `json:"claimStatus"`
	AuthenticityScore int              `json:"authenticityScore"`
	SkillBreakdown    []SkillScore     `json:"skillBreakdown"`
	Shortlist         []ShortlistEntry `json:"shortlist"`
}

// SkillRequirement is one weighted skill requirement of an employer template
type SkillRequirement struct {
	Skill  string `json:"skill"`
	Weight int    `json:"weight"`
}

// EmployerTemplate is a static catalog entry describing one employer role.
// Requirement weights need not sum to 100; the ranker normalizes by total.
type EmployerTemplate struct {
	CompanyID      string             `json:"companyId"`
	CompanyName    string             `json:"companyName"`
	Role           string             `json:"role"`
	RequiredSkills []SkillRequirement `json:"requiredSkills"`
}

// AnalyzeResumeInput represents the input for resume gap analysis
type AnalyzeResumeInput struct {
	ResumeText     string   `json:"resumeText"`
	RequiredSkills []string `json:"requiredSkills,omitempty"`
}

// AnalyzeResumeOutput represents the result of resume gap analysis
type AnalyzeResumeOutput struct {
	Score                  int      `json:"score"`
	ExtractedSkills        []string `json:"extractedSkills"`
	MatchedSkills          []string `json:"matchedSkills"`
	MissingSkills          []string `json:"missingSkills"`
	ImprovementSuggestions string   `json:"improvementSuggestions"`
}

// ParseProfileInput represents the input for profile parsing
type ParseProfileInput struct {
	ProfileText    string   `json:"profileText"`
	RequiredSkills []string `json:"requiredSkills,omitempty"`
}

// CandidateProfile is the structured form of a pasted profile text
type CandidateProfile struct {
	Headline          string `json:"headline"`
	YearsOfExperience int    `json:"yearsOfExperience"`
	Summary           string `json:"summary"`
}

// ParseProfileOutput combines the parsed profile with a skill-gap analysis
type ParseProfileOutput struct {
	Profile  CandidateProfile    `json:"profile"`
	Analysis AnalyzeResumeOutput `json:"analysis"`
}
