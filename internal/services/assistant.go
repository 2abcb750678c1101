package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
	"talentforge/hr-platform/internal/repositories"
)

// Intent classes the assistant recognizes in HR chat messages.
const (
	intentCandidateSearch   = "candidate_search"
	intentVacancyGeneration = "vacancy_generation"
	intentAnalytics         = "hr_analytics"
	intentConsultation      = "hr_consultation"
)

const assistantErrorReply = "Sorry, something went wrong. Please try rephrasing your request."

// AssistantService is the HR-facing chat assistant. It routes messages to the
// candidate search pipeline, vacancy generation, analytics, or general
// consultation, and persists the conversation.
type AssistantService interface {
	HandleChatMessage(ctx context.Context, hrUserID uuid.UUID, request models.AssistantChatRequest) (*models.AssistantChatResponse, error)
	Analytics(ctx context.Context) (*models.HRAnalyticsResponse, error)
}

type assistantService struct {
	chatRepo      repositories.ChatRepository
	userRepo      repositories.UserRepository
	search        SearchService
	completion    CompletionClient
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewAssistantService(
	chatRepo repositories.ChatRepository,
	userRepo repositories.UserRepository,
	search SearchService,
	completion CompletionClient,
	logger *zap.Logger,
) AssistantService {
	return &assistantService{
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		search:        search,
		completion:    completion,
		promptBuilder: NewPromptBuilder(),
		logger:        logger.Named("assistant"),
	}
}

// HandleChatMessage implements AssistantService.
func (s *assistantService) HandleChatMessage(ctx context.Context, hrUserID uuid.UUID, request models.AssistantChatRequest) (*models.AssistantChatResponse, error) {
	session, err := s.resolveSession(hrUserID, request.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.chatRepo.AppendMessage(&models.ChatMessage{
		ID:        uuid.New(),
		SessionID: session.ID,
		Role:      models.ChatRoleUser,
		Content:   request.Message,
	}); err != nil {
		return nil, err
	}

	response := s.dispatch(ctx, request.Message)
	response.SessionID = session.ID

	if err := s.chatRepo.AppendMessage(&models.ChatMessage{
		ID:        uuid.New(),
		SessionID: session.ID,
		Role:      models.ChatRoleAssistant,
		Content:   response.Response,
	}); err != nil {
		return nil, err
	}
	if err := s.chatRepo.TouchSession(session.ID); err != nil {
		s.logger.Warn("failed to touch session", zap.String("session_id", session.ID.String()), zap.Error(err))
	}

	return response, nil
}

func (s *assistantService) resolveSession(hrUserID uuid.UUID, sessionID *uuid.UUID) (*models.ChatSession, error) {
	if sessionID != nil {
		session, err := s.chatRepo.FindSession(*sessionID, hrUserID)
		if err == nil {
			return session, nil
		}
	}

	session := &models.ChatSession{
		ID:     uuid.New(),
		UserID: hrUserID,
		Title:  "HR AI Chat",
	}
	if err := s.chatRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *assistantService) dispatch(ctx context.Context, message string) *models.AssistantChatResponse {
	switch detectIntent(message) {
	case intentCandidateSearch:
		return s.handleCandidateSearch(ctx, message)
	case intentVacancyGeneration:
		return s.handleVacancyGeneration(ctx, message)
	case intentAnalytics:
		return s.handleAnalytics(ctx)
	default:
		return s.handleConsultation(ctx, message)
	}
}

func detectIntent(message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "find candidates", "search candidates", "candidates for", "looking for"):
		return intentCandidateSearch
	case containsAny(lower, "create a vacancy", "generate a description", "write a vacancy", "vacancy description"):
		return intentVacancyGeneration
	case containsAny(lower, "analytics", "statistics", "how many candidates", "top skills"):
		return intentAnalytics
	default:
		return intentConsultation
	}
}

func (s *assistantService) handleCandidateSearch(ctx context.Context, message string) *models.AssistantChatResponse {
	searchRequest := s.extractSearchRequest(ctx, message)

	result, err := s.search.SearchCandidates(ctx, searchRequest)
	if err != nil {
		s.logger.Warn("assistant-triggered search failed", zap.Error(err))
		return &models.AssistantChatResponse{
			Response:     "Candidate search is temporarily unavailable. Please try again in a moment.",
			ResponseType: intentCandidateSearch,
		}
	}

	if result.ProcessedByAI == 0 {
		return &models.AssistantChatResponse{
			Response: fmt.Sprintf("No matching candidates found for %q. Try relaxing the skill "+
				"requirements or lowering the experience level.", searchRequest.JobTitle),
			ResponseType: intentCandidateSearch,
			QuickReplies: []string{"Broaden the search", "Change requirements"},
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidates found for %q:\n", searchRequest.JobTitle)
	fmt.Fprintf(&sb, "Profiles found: %d\nProcessed by AI: %d\n\n", result.TotalProfilesFound, result.ProcessedByAI)
	for i, candidate := range result.Candidates {
		if i == 3 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s (match: %.0f%%)\n", i+1, candidate.FullName, candidate.MatchScore*100)
	}

	return &models.AssistantChatResponse{
		Response:     sb.String(),
		ResponseType: intentCandidateSearch,
		Candidates:   result.Candidates,
		QuickReplies: []string{"Show all results", "Refine requirements"},
	}
}

// extractSearchRequest converts a free-form chat message into a structured
// search request: LLM extraction first, keyword heuristics on failure.
func (s *assistantService) extractSearchRequest(ctx context.Context, message string) models.CandidateSearchRequest {
	prompt := s.promptBuilder.BuildRequirementExtractionPrompt(message)

	var extracted struct {
		Title                  string   `json:"title"`
		RequiredSkills         []string `json:"required_skills"`
		ExperienceLevel        string   `json:"experience_level"`
		AdditionalRequirements string   `json:"additional_requirements"`
	}

	response, err := s.completion.Complete(ctx, consultantSystemPrompt, prompt, 300, 0.3)
	if err != nil || json.Unmarshal([]byte(extractJSON(response)), &extracted) != nil || extracted.Title == "" {
		if err != nil {
			s.logger.Debug("requirement extraction fell back to heuristics", zap.Error(err))
		}
		heuristic := extractRequirementsHeuristically(message)
		extracted.Title = heuristic.Title
		extracted.RequiredSkills = heuristic.RequiredSkills
		extracted.ExperienceLevel = heuristic.ExperienceLevel
	}

	request := models.CandidateSearchRequest{
		JobTitle:               extracted.Title,
		JobDescription:         message,
		RequiredSkills:         extracted.RequiredSkills,
		AdditionalRequirements: extracted.AdditionalRequirements,
		ExperienceLevel:        extracted.ExperienceLevel,
		MaxCandidates:          10,
		ThresholdFilterLimit:   40,
	}
	request.ApplyDefaults()
	return request
}

type heuristicRequirements struct {
	Title           string
	RequiredSkills  []string
	ExperienceLevel string
}

var heuristicSkills = []string{
	"python", "java", "javascript", "react", "node.js", "sql", "git", "docker", "kubernetes", "go",
}

func extractRequirementsHeuristically(message string) heuristicRequirements {
	lower := strings.ToLower(message)

	level := "middle"
	if containsAny(lower, "junior", "intern", "trainee") {
		level = "junior"
	} else if containsAny(lower, "senior", "lead") {
		level = "senior"
	}

	var skills []string
	for _, skill := range heuristicSkills {
		if containsSkillWord(lower, skill) {
			skills = append(skills, skill)
		}
	}

	title := "Developer"
	switch {
	case strings.Contains(lower, "backend"):
		title = "Backend Developer"
	case strings.Contains(lower, "frontend"):
		title = "Frontend Developer"
	case strings.Contains(lower, "data") && containsAny(lower, "scientist", "analyst"):
		title = "Data Scientist"
	case containsAny(lower, "ml ", "machine learning"):
		title = "ML Engineer"
	}

	return heuristicRequirements{Title: title, RequiredSkills: skills, ExperienceLevel: level}
}

// containsSkillWord reports whether skill occurs in text on word boundaries.
// Plain substring search would let short names like "go" match inside "good"
// or "google".
func containsSkillWord(text, skill string) bool {
	for start := 0; start <= len(text)-len(skill); {
		idx := strings.Index(text[start:], skill)
		if idx < 0 {
			return false
		}
		idx += start

		before := idx - 1
		after := idx + len(skill)
		if (before < 0 || !isWordChar(text[before])) && (after >= len(text) || !isWordChar(text[after])) {
			return true
		}
		start = idx + 1
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (s *assistantService) handleVacancyGeneration(ctx context.Context, message string) *models.AssistantChatResponse {
	prompt := s.promptBuilder.BuildVacancyGenerationPrompt(message)

	description, err := s.completion.Complete(ctx, consultantSystemPrompt, prompt, 600, 0.6)
	if err != nil {
		s.logger.Warn("vacancy generation failed", zap.Error(err))
		return &models.AssistantChatResponse{
			Response:     assistantErrorReply,
			ResponseType: intentVacancyGeneration,
		}
	}

	return &models.AssistantChatResponse{
		Response:     "Generated vacancy description:\n\n" + description,
		ResponseType: intentVacancyGeneration,
		QuickReplies: []string{"Adjust requirements", "Generate another version"},
	}
}

func (s *assistantService) handleAnalytics(ctx context.Context) *models.AssistantChatResponse {
	analytics, err := s.Analytics(ctx)
	if err != nil {
		s.logger.Warn("analytics failed", zap.Error(err))
		return &models.AssistantChatResponse{
			Response:     assistantErrorReply,
			ResponseType: intentAnalytics,
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "HR analytics:\n\nTotal candidates: %d\nFilled profiles: %d (%.1f%%)\n",
		analytics.TotalCandidates, analytics.FilledProfiles, analytics.ProfileCompletionRate)
	if len(analytics.TopSkills) > 0 {
		sb.WriteString("\nTop skills:\n")
		for i, skill := range analytics.TopSkills {
			if i == 5 {
				break
			}
			fmt.Fprintf(&sb, "- %s (%d)\n", skill.Skill, skill.Count)
		}
	}

	return &models.AssistantChatResponse{
		Response:     sb.String(),
		ResponseType: intentAnalytics,
		QuickReplies: []string{"Full statistics", "Top 10 skills"},
	}
}

func (s *assistantService) handleConsultation(ctx context.Context, message string) *models.AssistantChatResponse {
	prompt := s.promptBuilder.BuildConsultationPrompt(message)

	answer, err := s.completion.Complete(ctx, consultantSystemPrompt, prompt, 400, 0.6)
	if err != nil {
		s.logger.Warn("consultation failed", zap.Error(err))
		return &models.AssistantChatResponse{
			Response: "I'm an experienced HR consultant and happy to help. Try asking a specific " +
				"question about candidate search, vacancies, or HR analytics.",
			ResponseType: intentConsultation,
		}
	}

	return &models.AssistantChatResponse{
		Response:     answer,
		ResponseType: intentConsultation,
		QuickReplies: []string{"More advice", "Best practices"},
	}
}

// Analytics implements AssistantService. Skill counts are aggregated over the
// live candidate pool rather than a canned list.
func (s *assistantService) Analytics(ctx context.Context) (*models.HRAnalyticsResponse, error) {
	total, err := s.userRepo.CountCandidates()
	if err != nil {
		return nil, err
	}
	filled, err := s.userRepo.CountCandidatesWithSkills()
	if err != nil {
		return nil, err
	}

	candidates, err := s.userRepo.FindActiveCandidates()
	if err != nil {
		return nil, err
	}

	skillCounts := make(map[string]int)
	distribution := map[string]int{"junior": 0, "middle": 0, "senior": 0, "unknown": 0}

	for i := range candidates {
		user := &candidates[i]
		for _, skill := range append(append([]string{}, user.ProgrammingLanguages...), user.OtherCompetencies...) {
			skill = canonicalSkill(skill)
			if skill != "" {
				skillCounts[skill]++
			}
		}

		level := "unknown"
		for name, synonyms := range experienceSynonyms {
			if matchesExperienceLevel(user, synonyms) {
				level = name
				break
			}
		}
		distribution[level]++
	}

	topSkills := make([]models.SkillCount, 0, len(skillCounts))
	for skill, count := range skillCounts {
		topSkills = append(topSkills, models.SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(topSkills, func(i, j int) bool {
		if topSkills[i].Count != topSkills[j].Count {
			return topSkills[i].Count > topSkills[j].Count
		}
		return topSkills[i].Skill < topSkills[j].Skill
	})
	if len(topSkills) > 10 {
		topSkills = topSkills[:10]
	}

	rate := 0.0
	if total > 0 {
		rate = float64(filled) / float64(total) * 100
	}

	return &models.HRAnalyticsResponse{
		TotalCandidates:        int(total),
		FilledProfiles:         int(filled),
		ProfileCompletionRate:  float64(int(rate*100+0.5)) / 100,
		TopSkills:              topSkills,
		ExperienceDistribution: distribution,
	}, nil
}

// canonicalSkill folds case variants of the same skill into one counter key.
func canonicalSkill(skill string) string {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return ""
	}
	return strings.ToUpper(skill[:1]) + skill[1:]
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
