package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleHR        UserRole = "hr"
	RoleAdmin     UserRole = "admin"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "internship"
)

// WorkExperience is a single entry of a candidate's employment history.
type WorkExperience struct {
	Role        string `json:"role"`
	Company     string `json:"company,omitempty"`
	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`
	IsCurrent   bool   `json:"is_current,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single entry of a candidate's education history.
type Education struct {
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Institution  string `json:"institution,omitempty"`
	YearStart    int    `json:"year_start,omitempty"`
	YearEnd      int    `json:"year_end,omitempty"`
}

// ForeignLanguage is a spoken language with a proficiency level.
type ForeignLanguage struct {
	Language string `json:"language"`
	Level    string `json:"level,omitempty"`
}

// User is a platform account. Candidate accounts carry the profile fields the
// search pipeline reads; the pipeline itself never writes them.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username string    `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Role     UserRole  `gorm:"type:text;not null;default:'candidate'" json:"role"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	FullName  string `gorm:"type:text" json:"full_name,omitempty"`
	FirstName string `gorm:"type:text" json:"first_name,omitempty"`
	LastName  string `gorm:"type:text" json:"last_name,omitempty"`
	Phone     string `gorm:"type:text" json:"phone,omitempty"`
	Location  string `gorm:"type:text" json:"location,omitempty"`
	About     string `gorm:"type:text" json:"about,omitempty"`

	DesiredSalary   *int            `json:"desired_salary,omitempty"`
	ReadyToRelocate *bool           `json:"ready_to_relocate,omitempty"`
	EmploymentType  *EmploymentType `gorm:"type:text" json:"employment_type,omitempty"`

	ProgrammingLanguages []string          `gorm:"serializer:json;type:jsonb" json:"programming_languages,omitempty"`
	OtherCompetencies    []string          `gorm:"serializer:json;type:jsonb" json:"other_competencies,omitempty"`
	WorkExperience       []WorkExperience  `gorm:"serializer:json;type:jsonb" json:"work_experience,omitempty"`
	Education            []Education       `gorm:"serializer:json;type:jsonb" json:"education,omitempty"`
	ForeignLanguages     []ForeignLanguage `gorm:"serializer:json;type:jsonb" json:"foreign_languages,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName resolves the best human-readable name for the candidate.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Username
}

// CurrentPosition returns the role of the candidate's current job, falling
// back to the most recent entry when no entry is marked current.
func (u *User) CurrentPosition() string {
	for _, exp := range u.WorkExperience {
		if exp.IsCurrent || exp.PeriodEnd == "" {
			return exp.Role
		}
	}
	if len(u.WorkExperience) > 0 {
		return u.WorkExperience[0].Role
	}
	return ""
}

// ExperienceSummary gives a rough total of work history length. Entries
// without dates count as one year each.
func (u *User) ExperienceSummary() string {
	if len(u.WorkExperience) == 0 {
		return ""
	}

	years := len(u.WorkExperience)
	if years == 1 {
		return "1 year"
	}
	return strconv.Itoa(years) + " years"
}
