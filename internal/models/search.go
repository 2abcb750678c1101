package models

import "github.com/google/uuid"

const (
	DefaultMaxCandidates        = 20
	DefaultThresholdFilterLimit = 50
)

// CandidateSearchRequest is the request-scoped description of a vacancy an HR
// user wants candidates for. It is never persisted.
type CandidateSearchRequest struct {
	JobTitle               string   `json:"job_title"`
	JobDescription         string   `json:"job_description"`
	RequiredSkills         []string `json:"required_skills"`
	AdditionalRequirements string   `json:"additional_requirements,omitempty"`
	ExperienceLevel        string   `json:"experience_level,omitempty"`
	MaxCandidates          int      `json:"max_candidates,omitempty"`
	ThresholdFilterLimit   int      `json:"threshold_filter_limit,omitempty"`
}

// ApplyDefaults fills the tunables that were omitted from the request.
func (r *CandidateSearchRequest) ApplyDefaults() {
	if r.RequiredSkills == nil {
		r.RequiredSkills = []string{}
	}
	if r.MaxCandidates <= 0 {
		r.MaxCandidates = DefaultMaxCandidates
	}
	if r.ThresholdFilterLimit <= 0 {
		r.ThresholdFilterLimit = DefaultThresholdFilterLimit
	}
}

// CandidateMatch is one analyzed candidate in a search response. MatchScore is
// the authoritative ranking key; SimilarityScore is informational.
type CandidateMatch struct {
	UserID               uuid.UUID `json:"user_id"`
	FullName             string    `json:"full_name"`
	Email                string    `json:"email"`
	CurrentPosition      string    `json:"current_position,omitempty"`
	ExperienceYears      string    `json:"experience_years,omitempty"`
	KeySkills            []string  `json:"key_skills"`
	ProgrammingLanguages []string  `json:"programming_languages"`
	MatchScore           float64   `json:"match_score"`
	AISummary            string    `json:"ai_summary"`
	Strengths            []string  `json:"strengths"`
	GrowthAreas          []string  `json:"growth_areas"`
	SimilarityScore      float64   `json:"similarity_score"`
}

// CandidateSearchResponse is the full result of one search run.
type CandidateSearchResponse struct {
	JobTitle              string           `json:"job_title"`
	TotalProfilesFound    int              `json:"total_profiles_found"`
	ProcessedByAI         int              `json:"processed_by_ai"`
	FiltersApplied        []string         `json:"filters_applied"`
	Candidates            []CandidateMatch `json:"candidates"`
	ProcessingTimeSeconds float64          `json:"processing_time_seconds"`
}

// AssistantChatRequest is a message sent to the HR assistant.
type AssistantChatRequest struct {
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	Message   string     `json:"message"`
}

// AssistantChatResponse is the assistant's reply, optionally carrying
// candidate cards when the message triggered a search.
type AssistantChatResponse struct {
	SessionID    uuid.UUID        `json:"session_id"`
	Response     string           `json:"response"`
	ResponseType string           `json:"response_type"`
	Candidates   []CandidateMatch `json:"candidates,omitempty"`
	QuickReplies []string         `json:"quick_replies,omitempty"`
}

// HRAnalyticsResponse summarizes the candidate pool for HR dashboards.
type HRAnalyticsResponse struct {
	TotalCandidates        int            `json:"total_candidates"`
	FilledProfiles         int            `json:"filled_profiles"`
	ProfileCompletionRate  float64        `json:"profile_completion_rate"`
	TopSkills              []SkillCount   `json:"top_skills"`
	ExperienceDistribution map[string]int `json:"experience_distribution"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// ResumeImportResponse reports what a resume upload changed on the profile.
type ResumeImportResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	Filename       string    `json:"filename"`
	ExtractedChars int       `json:"extracted_chars"`
	AboutUpdated   bool      `json:"about_updated"`
}
