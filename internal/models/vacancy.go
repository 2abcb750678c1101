package models

import (
	"time"

	"github.com/google/uuid"
)

type VacancyStatus string

const (
	VacancyOpen   VacancyStatus = "open"
	VacancyClosed VacancyStatus = "closed"
	VacancyDraft  VacancyStatus = "draft"
)

type Vacancy struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string        `gorm:"type:text;not null" json:"title"`
	Description     string        `gorm:"type:text;not null" json:"description"`
	Requirements    string        `gorm:"type:text" json:"requirements,omitempty"`
	RequiredSkills  []string      `gorm:"serializer:json;type:jsonb" json:"required_skills,omitempty"`
	ExperienceLevel string        `gorm:"type:text" json:"experience_level,omitempty"`
	SalaryFrom      *int          `json:"salary_from,omitempty"`
	SalaryTo        *int          `json:"salary_to,omitempty"`
	Location        string        `gorm:"type:text" json:"location,omitempty"`
	Company         string        `gorm:"type:text" json:"company,omitempty"`
	Status          VacancyStatus `gorm:"type:text;not null;default:'open'" json:"status"`
	CreatorID       uuid.UUID     `gorm:"type:uuid" json:"creator_id"`
	CreatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Vacancy) TableName() string {
	return "vacancies"
}
