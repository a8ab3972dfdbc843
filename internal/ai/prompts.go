package ai

// DefaultSystemPrompt is the system instruction for skill extraction
const DefaultSystemPrompt = `You are a resume analyzer specializing in technical skill extraction. Your core principles are:

- Extract only skills that are actually evidenced in the resume text
- NEVER invent skills the candidate did not mention
- Use conventional short names for technologies (e.g. "React", "SQL", "System Design")
- Improvement suggestions must be concrete and actionable`

// DefaultUserPrompt is the user prompt template for skill extraction.
// The placeholders are the required-skills list (JSON) and the resume text.
const DefaultUserPrompt = `Extract the candidate's technical skills from the resume below and suggest how the resume could be improved.

Required skills for the target role (may be empty): %s

Resume text:
-----
%s
-----`
