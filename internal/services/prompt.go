package services

import (
	"fmt"
	"strings"

	"talentforge/hr-platform/internal/models"
)

// System prompts reused across LLM calls.
const (
	recruiterSystemPrompt = "You are a professional HR expert experienced in IT recruiting. " +
		"Analyze candidate profiles as objectively as possible, taking into account " +
		"their skills, work experience, education, and growth potential."

	consultantSystemPrompt = "You are a professional HR consultant and recruiting expert. " +
		"You help HR managers find the best candidates, write vacancies, and analyze " +
		"the job market. IMPORTANT: answer BRIEFLY and in a STRUCTURED way, 3-4 sentences " +
		"maximum. Use lists, be professional and concrete."
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCandidateAnalysisPrompt creates the per-candidate analysis prompt. The
// model must answer with strict JSON carrying a bounded match score.
func (pb *PromptBuilder) BuildCandidateAnalysisPrompt(user *models.User, jobTitle, jobDescription string, similarityScore float64) string {
	candidateInfo := fmt.Sprintf(`CANDIDATE:
Name: %s
Email: %s
Location: %s
About: %s
Desired salary: %s
Programming languages: %s
Other skills: %s
Work experience: %d positions
Education: %d records
Vector similarity with the vacancy: %.2f`,
		user.DisplayName(),
		user.Email,
		orUnknown(user.Location),
		orUnknown(user.About),
		salaryText(user.DesiredSalary),
		joinOrUnknown(user.ProgrammingLanguages),
		joinOrUnknown(user.OtherCompetencies),
		len(user.WorkExperience),
		len(user.Education),
		similarityScore,
	)

	return fmt.Sprintf(`Analyze how well the candidate matches the vacancy requirements.

VACANCY:
Title: %s
Description: %s

%s

TASKS:
1. Score the candidate's match from 0.0 to 1.0 (1.0 is a perfect match)
2. Highlight 2-3 main strengths of the candidate
3. Name 1-2 growth areas or missing skills
4. Write a short conclusion (2-3 sentences)

ANSWER IN JSON FORMAT:
{
    "match_score": 0.85,
    "strengths": ["Strength 1", "Strength 2"],
    "growth_areas": ["Growth area 1", "Growth area 2"],
    "summary": "Short conclusion about this candidate and their fit for the vacancy"
}

IMPORTANT: Answer with JSON ONLY, no extra text!`, jobTitle, jobDescription, candidateInfo)
}

// BuildRequirementExtractionPrompt asks the model to turn a free-form HR chat
// message into structured vacancy requirements.
func (pb *PromptBuilder) BuildRequirementExtractionPrompt(message string) string {
	return fmt.Sprintf(`Analyze the HR manager's request and extract the vacancy requirements as JSON:

Request: "%s"

Return only JSON with the fields:
- title: position name
- required_skills: array of key skills
- experience_level: experience level (junior/middle/senior)
- additional_requirements: extra requirements (string)

Use empty values for anything not specified.`, message)
}

// BuildVacancyGenerationPrompt creates the prompt for generating a vacancy
// description from a chat request.
func (pb *PromptBuilder) BuildVacancyGenerationPrompt(message string) string {
	return fmt.Sprintf(`Write a professional vacancy description based on the HR manager's request.

Request: "%s"

Structure the answer:
1. Position title
2. Company description (generic template)
3. Main responsibilities (3-5 bullet points)
4. Candidate requirements
5. Working conditions

The answer must be professional, attractive, and structured. 400 words maximum.`, message)
}

// BuildConsultationPrompt creates the prompt for general HR consulting.
func (pb *PromptBuilder) BuildConsultationPrompt(message string) string {
	return fmt.Sprintf(`You are an experienced HR consultant. Answer a colleague's question professionally and helpfully.

Question: "%s"

Give practical advice and recommendations. The answer must be structured and concise. 200 words maximum.`, message)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func joinOrUnknown(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	return strings.Join(items, ", ")
}

func salaryText(salary *int) string {
	if salary == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%d", *salary)
}
