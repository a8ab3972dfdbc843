package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillproof/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalyzeResumeOutput", &AnalyzeTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalyzeResumeOutput", &AnalyzeMarkdownFormatter{})
	registry.RegisterFormatter("text", "ParseProfileOutput", &ProfileTextFormatter{})
	registry.RegisterFormatter("markdown", "ParseProfileOutput", &ProfileMarkdownFormatter{})
	registry.RegisterFormatter("text", "GenerateTestOutput", &ClaimTestTextFormatter{})
	registry.RegisterFormatter("text", "EvaluateTestOutput", &EvaluationTextFormatter{})
	registry.RegisterFormatter("markdown", "EvaluateTestOutput", &EvaluationMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalyzeResumeOutput:
		return "AnalyzeResumeOutput"
	case types.ParseProfileOutput:
		return "ParseProfileOutput"
	case types.GenerateTestOutput:
		return "GenerateTestOutput"
	case types.EvaluateTestOutput:
		return "EvaluateTestOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalyzeTextFormatter handles text formatting for resume analysis results
type AnalyzeTextFormatter struct{}

func (atf *AnalyzeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Match Score: %d/100\n\n", result.Score))

	writeSkillList(&output, "Extracted Skills", result.ExtractedSkills)
	writeSkillList(&output, "Matched Skills", result.MatchedSkills)
	writeSkillList(&output, "Missing Skills", result.MissingSkills)

	output.WriteString("Suggestions:\n")
	output.WriteString(result.ImprovementSuggestions)
	output.WriteString("\n")

	return output.String(), nil
}

func (atf *AnalyzeTextFormatter) SupportedType() string {
	return "AnalyzeResumeOutput"
}

func writeSkillList(output *strings.Builder, title string, skills []string) {
	output.WriteString(title + ":\n")
	if len(skills) == 0 {
		output.WriteString("  (none)\n")
	}
	for _, skill := range skills {
		output.WriteString(fmt.Sprintf("  - %s\n", skill))
	}
	output.WriteString("\n")
}

// AnalyzeMarkdownFormatter handles markdown formatting for resume analysis results
type AnalyzeMarkdownFormatter struct{}

func (amf *AnalyzeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Match Score:** %d/100\n\n", result.Score))

	writeMarkdownSkillList(&output, "Extracted Skills", result.ExtractedSkills)
	writeMarkdownSkillList(&output, "Matched Skills", result.MatchedSkills)
	writeMarkdownSkillList(&output, "Missing Skills", result.MissingSkills)

	output.WriteString("## Suggestions\n\n")
	output.WriteString(result.ImprovementSuggestions)
	output.WriteString("\n")

	return output.String(), nil
}

func (amf *AnalyzeMarkdownFormatter) SupportedType() string {
	return "AnalyzeResumeOutput"
}

func writeMarkdownSkillList(output *strings.Builder, title string, skills []string) {
	output.WriteString("## " + title + "\n\n")
	if len(skills) == 0 {
		output.WriteString("_None_\n")
	}
	for _, skill := range skills {
		output.WriteString(fmt.Sprintf("- %s\n", skill))
	}
	output.WriteString("\n")
}

// ProfileTextFormatter handles text formatting for profile parsing results
type ProfileTextFormatter struct{}

func (ptf *ProfileTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParseProfileOutput)
	if !ok {
		return "", fmt.Errorf("expected ParseProfileOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CANDIDATE PROFILE ===\n\n")
	output.WriteString(fmt.Sprintf("Headline: %s\n", result.Profile.Headline))
	output.WriteString(fmt.Sprintf("Years of Experience: %d\n\n", result.Profile.YearsOfExperience))
	output.WriteString("Summary:\n")
	output.WriteString(result.Profile.Summary)
	output.WriteString("\n\n")

	output.WriteString("=== SKILL ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Match Score: %d/100\n\n", result.Analysis.Score))
	writeSkillList(&output, "Matched Skills", result.Analysis.MatchedSkills)
	writeSkillList(&output, "Missing Skills", result.Analysis.MissingSkills)

	return output.String(), nil
}

func (ptf *ProfileTextFormatter) SupportedType() string {
	return "ParseProfileOutput"
}

// ProfileMarkdownFormatter handles markdown formatting for profile parsing results
type ProfileMarkdownFormatter struct{}

func (pmf *ProfileMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParseProfileOutput)
	if !ok {
		return "", fmt.Errorf("expected ParseProfileOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Candidate Profile\n\n")
	output.WriteString(fmt.Sprintf("**Headline:** %s\n\n", result.Profile.Headline))
	output.WriteString(fmt.Sprintf("**Years of Experience:** %d\n\n", result.Profile.YearsOfExperience))
	output.WriteString("## Summary\n\n")
	output.WriteString(result.Profile.Summary)
	output.WriteString("\n\n")

	output.WriteString("## Skill Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Match Score:** %d/100\n\n", result.Analysis.Score))
	writeMarkdownSkillList(&output, "Matched Skills", result.Analysis.MatchedSkills)
	writeMarkdownSkillList(&output, "Missing Skills", result.Analysis.MissingSkills)

	return output.String(), nil
}

func (pmf *ProfileMarkdownFormatter) SupportedType() string {
	return "ParseProfileOutput"
}

// ClaimTestTextFormatter handles text formatting for generated claim tests
type ClaimTestTextFormatter struct{}

func (ctf *ClaimTestTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.GenerateTestOutput)
	if !ok {
		return "", fmt.Errorf("expected GenerateTestOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CLAIM TEST ===\n\n")
	output.WriteString(fmt.Sprintf("Test ID: %s\n", result.TestID))
	writeSkillList(&output, "Claimed Skills", result.ClaimedSkills)

	output.WriteString(fmt.Sprintf("Questions (%d):\n\n", result.QuestionCount))
	for i, q := range result.Questions {
		output.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, q.Skill, q.Prompt))
		for j, option := range q.Options {
			output.WriteString(fmt.Sprintf("   %c) %s\n", 'a'+j, option))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (ctf *ClaimTestTextFormatter) SupportedType() string {
	return "GenerateTestOutput"
}

// EvaluationTextFormatter handles text formatting for claim-test evaluations
type EvaluationTextFormatter struct{}

func (etf *EvaluationTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EvaluateTestOutput)
	if !ok {
		return "", fmt.Errorf("expected EvaluateTestOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CLAIM TEST EVALUATION ===\n\n")
	output.WriteString(fmt.Sprintf("Test ID: %s\n", result.TestID))
	output.WriteString(fmt.Sprintf("Claim Status: %s\n", result.ClaimStatus))
	output.WriteString(fmt.Sprintf("Authenticity Score: %d/100\n\n", result.AuthenticityScore))

	if len(result.SkillBreakdown) > 0 {
		output.WriteString("Skill Breakdown:\n")
		for _, entry := range result.SkillBreakdown {
			output.WriteString(fmt.Sprintf("  - %s: %d/100\n", entry.Skill, entry.Score))
		}
		output.WriteString("\n")
	}

	if len(result.Shortlist) > 0 {
		output.WriteString("Employer Shortlist:\n")
		for i, entry := range result.Shortlist {
			output.WriteString(fmt.Sprintf("%d. %s - %s (fit: %d, coverage: %d%%)\n",
				i+1, entry.CompanyName, entry.Role, entry.FitScore, entry.ClaimCoverage))
		}
	}

	return output.String(), nil
}

func (etf *EvaluationTextFormatter) SupportedType() string {
	return "EvaluateTestOutput"
}

// EvaluationMarkdownFormatter handles markdown formatting for claim-test evaluations
type EvaluationMarkdownFormatter struct{}

func (emf *EvaluationMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EvaluateTestOutput)
	if !ok {
		return "", fmt.Errorf("expected EvaluateTestOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Claim Test Evaluation\n\n")
	output.WriteString(fmt.Sprintf("**Test ID:** %s\n\n", result.TestID))
	output.WriteString(fmt.Sprintf("**Claim Status:** %s\n\n", result.ClaimStatus))
	output.WriteString(fmt.Sprintf("**Authenticity Score:** %d/100\n\n", result.AuthenticityScore))

	if len(result.SkillBreakdown) > 0 {
		output.WriteString("## Skill Breakdown\n\n")
		for _, entry := range result.SkillBreakdown {
			output.WriteString(fmt.Sprintf("- **%s:** %d/100\n", entry.Skill, entry.Score))
		}
		output.WriteString("\n")
	}

	if len(result.Shortlist) > 0 {
		output.WriteString("## Employer Shortlist\n\n")
		for i, entry := range result.Shortlist {
			output.WriteString(fmt.Sprintf("%d. **%s** - %s (fit: %d, coverage: %d%%)\n",
				i+1, entry.CompanyName, entry.Role, entry.FitScore, entry.ClaimCoverage))
		}
	}

	return output.String(), nil
}

func (emf *EvaluationMarkdownFormatter) SupportedType() string {
	return "EvaluateTestOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
