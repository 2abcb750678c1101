package services

import (
	"strings"

	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
)

// CandidateFilter narrows the candidate population before the expensive
// ranking stages. The substring heuristic is deliberately recall-favoring:
// the AI analysis stage downstream is the precision filter, this one only
// bounds the number of LLM calls. The interface isolates the heuristic so a
// real search index can replace it without touching the ranking pipeline.
type CandidateFilter interface {
	// Filter applies the skill and experience-level filters to the base
	// population. Empty requiredSkills means open search: no skill filter.
	Filter(users []models.User, requiredSkills []string, experienceLevel string) []models.User

	// FilterByKeywords re-filters an already-filtered set by domain keywords.
	// It narrows but never re-widens; an empty keyword list returns the set
	// unchanged.
	FilterByKeywords(users []models.User, keywords []string) []models.User

	// ExtractKeyTerms pulls domain keywords from a job description using a
	// fixed vocabulary of common role and technology terms.
	ExtractKeyTerms(jobDescription string) []string
}

// knownITTerms is the fixed vocabulary for the additional filtering pass.
var knownITTerms = []string{
	"backend", "frontend", "fullstack", "devops", "qa", "analyst", "manager",
	"mobile", "web", "api", "database", "cloud", "docker", "kubernetes",
	"agile", "scrum", "team lead", "architect", "senior", "middle", "junior",
}

const maxKeyTerms = 5

// experienceSynonyms maps the recognized level tags to the substrings that
// count as a match inside profile text.
var experienceSynonyms = map[string][]string{
	"junior": {"junior", "intern", "trainee"},
	"middle": {"middle", "mid-level"},
	"senior": {"senior", "lead", "architect"},
}

type substringCandidateFilter struct {
	logger *zap.Logger
}

func NewSubstringCandidateFilter(logger *zap.Logger) CandidateFilter {
	return &substringCandidateFilter{logger: logger.Named("filter")}
}

// Filter implements CandidateFilter.
func (f *substringCandidateFilter) Filter(users []models.User, requiredSkills []string, experienceLevel string) []models.User {
	result := users

	if len(requiredSkills) > 0 {
		var matched []models.User
		for _, user := range result {
			if matchesAnySkill(&user, requiredSkills) {
				matched = append(matched, user)
			}
		}
		result = matched
	}

	synonyms, recognized := experienceSynonyms[strings.ToLower(experienceLevel)]
	if recognized {
		var matched []models.User
		for _, user := range result {
			if matchesExperienceLevel(&user, synonyms) {
				matched = append(matched, user)
			}
		}
		result = matched
	} else if experienceLevel != "" {
		f.logger.Debug("skipping unrecognized experience level", zap.String("level", experienceLevel))
	}

	return result
}

// FilterByKeywords implements CandidateFilter.
func (f *substringCandidateFilter) FilterByKeywords(users []models.User, keywords []string) []models.User {
	if len(keywords) == 0 {
		return users
	}

	var matched []models.User
	for _, user := range users {
		haystack := additionalFilterText(&user)
		for _, keyword := range keywords {
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				matched = append(matched, user)
				break
			}
		}
	}
	return matched
}

// ExtractKeyTerms implements CandidateFilter.
func (f *substringCandidateFilter) ExtractKeyTerms(jobDescription string) []string {
	text := strings.ToLower(jobDescription)

	var terms []string
	for _, term := range knownITTerms {
		if strings.Contains(text, term) {
			terms = append(terms, term)
			if len(terms) == maxKeyTerms {
				break
			}
		}
	}
	return terms
}

// matchesAnySkill reports whether any required skill appears in the
// candidate's programming languages, competencies, or self-description.
func matchesAnySkill(user *models.User, requiredSkills []string) bool {
	haystack := strings.ToLower(strings.Join(user.ProgrammingLanguages, " ") + " " +
		strings.Join(user.OtherCompetencies, " ") + " " +
		user.About)

	for _, skill := range requiredSkills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" && strings.Contains(haystack, skill) {
			return true
		}
	}
	return false
}

func matchesExperienceLevel(user *models.User, synonyms []string) bool {
	var sb strings.Builder
	sb.WriteString(user.About)
	for _, exp := range user.WorkExperience {
		sb.WriteString(" ")
		sb.WriteString(exp.Role)
		sb.WriteString(" ")
		sb.WriteString(exp.Description)
	}
	haystack := strings.ToLower(sb.String())

	for _, synonym := range synonyms {
		if strings.Contains(haystack, synonym) {
			return true
		}
	}
	return false
}

// additionalFilterText assembles the fields searched by the second pass:
// work experience, education, self-description, and competencies.
func additionalFilterText(user *models.User) string {
	var sb strings.Builder
	sb.WriteString(user.About)
	for _, exp := range user.WorkExperience {
		sb.WriteString(" ")
		sb.WriteString(exp.Role)
		sb.WriteString(" ")
		sb.WriteString(exp.Company)
		sb.WriteString(" ")
		sb.WriteString(exp.Description)
	}
	for _, edu := range user.Education {
		sb.WriteString(" ")
		sb.WriteString(edu.Degree)
		sb.WriteString(" ")
		sb.WriteString(edu.FieldOfStudy)
		sb.WriteString(" ")
		sb.WriteString(edu.Institution)
	}
	sb.WriteString(" ")
	sb.WriteString(strings.Join(user.OtherCompetencies, " "))
	return strings.ToLower(sb.String())
}
