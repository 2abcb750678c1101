package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"talentforge/hr-platform/internal/models"
)

func TestProfileTextFixedFieldOrder(t *testing.T) {
	salary := 90000
	relocate := true
	employment := models.EmploymentFullTime

	user := &models.User{
		ID:                   uuid.New(),
		About:                "Backend developer",
		Location:             "Berlin",
		DesiredSalary:        &salary,
		ReadyToRelocate:      &relocate,
		EmploymentType:       &employment,
		ProgrammingLanguages: []string{"Go", "Python"},
		OtherCompetencies:    []string{"PostgreSQL"},
		WorkExperience: []models.WorkExperience{
			{Role: "Senior Developer", Company: "Acme"},
		},
		Education: []models.Education{
			{Degree: "MSc", FieldOfStudy: "CS", Institution: "TU Berlin"},
		},
		ForeignLanguages: []models.ForeignLanguage{
			{Language: "English", Level: "C1"},
		},
	}

	text := ProfileText(user)

	wantInOrder := []string{
		"About: Backend developer",
		"Programming languages: Go, Python",
		"Skills and competencies: PostgreSQL",
		"Experience 1: Senior Developer at Acme",
		"Education 1: MSc CS TU Berlin",
		"Location: Berlin",
		"Ready to relocate",
		"Employment type: full_time",
		"Desired salary: 90000",
		"Language: English (C1)",
	}
	last := -1
	for _, part := range wantInOrder {
		idx := strings.Index(text, part)
		assert.Greater(t, idx, last, "expected %q after previous part", part)
		last = idx
	}
}

func TestProfileTextOmitsEmptyFields(t *testing.T) {
	user := &models.User{ID: uuid.New(), About: "Minimal profile"}

	text := ProfileText(user)

	assert.Equal(t, "About: Minimal profile", text)
}

func TestProfileTextCapsRepeatedSections(t *testing.T) {
	user := &models.User{
		ID: uuid.New(),
		WorkExperience: []models.WorkExperience{
			{Role: "A"}, {Role: "B"}, {Role: "C"}, {Role: "D"},
		},
		Education: []models.Education{
			{Degree: "1"}, {Degree: "2"}, {Degree: "3"},
		},
	}

	text := ProfileText(user)

	assert.Contains(t, text, "Experience 3: C")
	assert.NotContains(t, text, "Experience 4")
	assert.Contains(t, text, "Education 2: 2")
	assert.NotContains(t, text, "Education 3")
}

func TestProfileTextEmptyProfileFallsBackToID(t *testing.T) {
	user := &models.User{ID: uuid.New()}

	text := ProfileText(user)

	assert.Equal(t, "Candidate profile "+user.ID.String(), text)
}

func TestProfileTextDeterministic(t *testing.T) {
	user := &models.User{
		ID:                   uuid.New(),
		About:                "dev",
		ProgrammingLanguages: []string{"Go"},
	}

	assert.Equal(t, ProfileText(user), ProfileText(user))
}

func TestJobTextFormat(t *testing.T) {
	text := JobText("Python Developer", "Backend services")

	assert.Equal(t, "Vacancy: Python Developer\n\nDescription: Backend services", text)
}
