package services

import (
	"fmt"
	"strings"

	"talentforge/hr-platform/internal/models"
)

const (
	maxExperienceEntries = 3
	maxEducationEntries  = 2
)

// ProfileText builds the canonical textual representation of a candidate used
// for embedding. Fields are concatenated in a fixed order and empty fields are
// omitted entirely. An empty profile falls back to the candidate's id so the
// embedding is always well-defined.
func ProfileText(user *models.User) string {
	var parts []string

	if user.About != "" {
		parts = append(parts, "About: "+user.About)
	}
	if len(user.ProgrammingLanguages) > 0 {
		parts = append(parts, "Programming languages: "+strings.Join(user.ProgrammingLanguages, ", "))
	}
	if len(user.OtherCompetencies) > 0 {
		parts = append(parts, "Skills and competencies: "+strings.Join(user.OtherCompetencies, ", "))
	}

	for i, exp := range user.WorkExperience {
		if i >= maxExperienceEntries {
			break
		}
		if exp.Role == "" {
			continue
		}
		entry := fmt.Sprintf("Experience %d: %s", i+1, exp.Role)
		if exp.Company != "" {
			entry += " at " + exp.Company
		}
		parts = append(parts, entry)
	}

	for i, edu := range user.Education {
		if i >= maxEducationEntries {
			break
		}
		entry := strings.TrimSpace(strings.Join(nonEmpty(edu.Degree, edu.FieldOfStudy, edu.Institution), " "))
		if entry == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Education %d: %s", i+1, entry))
	}

	if user.Location != "" {
		parts = append(parts, "Location: "+user.Location)
	}
	if user.ReadyToRelocate != nil {
		if *user.ReadyToRelocate {
			parts = append(parts, "Ready to relocate")
		} else {
			parts = append(parts, "Not ready to relocate")
		}
	}
	if user.EmploymentType != nil {
		parts = append(parts, "Employment type: "+string(*user.EmploymentType))
	}
	if user.DesiredSalary != nil {
		parts = append(parts, fmt.Sprintf("Desired salary: %d", *user.DesiredSalary))
	}
	for _, lang := range user.ForeignLanguages {
		if lang.Language == "" {
			continue
		}
		entry := "Language: " + lang.Language
		if lang.Level != "" {
			entry += " (" + lang.Level + ")"
		}
		parts = append(parts, entry)
	}

	text := strings.Join(parts, ". ")
	if strings.TrimSpace(text) == "" {
		return "Candidate profile " + user.ID.String()
	}
	return text
}

// JobText builds the textual representation of a vacancy used for the job
// embedding, mirroring the profile-to-text rule.
func JobText(jobTitle, jobDescription string) string {
	return fmt.Sprintf("Vacancy: %s\n\nDescription: %s", jobTitle, jobDescription)
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
