package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
)

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"Find candidates for a Python backend role", intentCandidateSearch},
		{"I'm looking for a senior React developer", intentCandidateSearch},
		{"Please write a vacancy description for a QA engineer", intentVacancyGeneration},
		{"Create a vacancy for our data team", intentVacancyGeneration},
		{"Show me the analytics for our candidate pool", intentAnalytics},
		{"How many candidates do we have?", intentAnalytics},
		{"What salary should I offer a middle Go developer?", intentConsultation},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, detectIntent(tc.message), "message: %s", tc.message)
	}
}

func TestExtractRequirementsHeuristically(t *testing.T) {
	got := extractRequirementsHeuristically("Find me a senior backend developer with Python and Docker")

	assert.Equal(t, "Backend Developer", got.Title)
	assert.Equal(t, "senior", got.ExperienceLevel)
	assert.Contains(t, got.RequiredSkills, "python")
	assert.Contains(t, got.RequiredSkills, "docker")
}

func TestExtractRequirementsHeuristicallyDefaults(t *testing.T) {
	got := extractRequirementsHeuristically("need someone good")

	assert.Equal(t, "Developer", got.Title)
	assert.Equal(t, "middle", got.ExperienceLevel)
	assert.Empty(t, got.RequiredSkills)
}

func TestSkillMatchingRespectsWordBoundaries(t *testing.T) {
	// Short skill names must not match inside longer words.
	noise := extractRequirementsHeuristically("need someone good with google sheets")
	assert.Empty(t, noise.RequiredSkills)

	hit := extractRequirementsHeuristically("looking for a Go developer who knows sql")
	assert.Equal(t, []string{"sql", "go"}, hit.RequiredSkills)

	assert.True(t, containsSkillWord("we ship go services", "go"))
	assert.True(t, containsSkillWord("go at the start", "go"))
	assert.True(t, containsSkillWord("ends with go", "go"))
	assert.False(t, containsSkillWord("a good category", "go"))
	assert.True(t, containsSkillWord("node.js backend", "node.js"))
}

func TestCanonicalSkill(t *testing.T) {
	assert.Equal(t, "Python", canonicalSkill("python"))
	assert.Equal(t, "Python", canonicalSkill("  PYTHON "))
	assert.Equal(t, "", canonicalSkill("   "))
}

type stubSearchService struct {
	response *models.CandidateSearchResponse
	err      error
	lastReq  models.CandidateSearchRequest
}

func (s *stubSearchService) SearchCandidates(ctx context.Context, request models.CandidateSearchRequest) (*models.CandidateSearchResponse, error) {
	s.lastReq = request
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubSearchService) Close() {}

func newTestAssistant(chatRepo *fakeChatRepo, userRepo *fakeUserRepo, search SearchService, completion *fakeCompletion) AssistantService {
	return NewAssistantService(chatRepo, userRepo, search, completion, zap.NewNop())
}

func TestHandleChatMessagePersistsBothSides(t *testing.T) {
	chatRepo := newFakeChatRepo()
	search := &stubSearchService{response: &models.CandidateSearchResponse{Candidates: []models.CandidateMatch{}}}
	completion := &fakeCompletion{response: "Offer between 60k and 75k."}

	assistant := newTestAssistant(chatRepo, &fakeUserRepo{}, search, completion)
	hrID := uuid.New()

	response, err := assistant.HandleChatMessage(context.Background(), hrID, models.AssistantChatRequest{
		Message: "What salary should I offer?",
	})
	require.NoError(t, err)

	assert.Equal(t, intentConsultation, response.ResponseType)
	assert.NotEqual(t, uuid.Nil, response.SessionID)

	messages, err := chatRepo.FindMessages(response.SessionID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.ChatRoleUser, messages[0].Role)
	assert.Equal(t, models.ChatRoleAssistant, messages[1].Role)
	assert.Equal(t, response.Response, messages[1].Content)
}

func TestHandleChatMessageReusesSession(t *testing.T) {
	chatRepo := newFakeChatRepo()
	completion := &fakeCompletion{response: "Sure."}

	assistant := newTestAssistant(chatRepo, &fakeUserRepo{}, &stubSearchService{}, completion)
	hrID := uuid.New()

	first, err := assistant.HandleChatMessage(context.Background(), hrID, models.AssistantChatRequest{Message: "Hello"})
	require.NoError(t, err)

	second, err := assistant.HandleChatMessage(context.Background(), hrID, models.AssistantChatRequest{
		SessionID: &first.SessionID,
		Message:   "Another question",
	})
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)

	messages, err := chatRepo.FindMessages(first.SessionID)
	require.NoError(t, err)
	assert.Len(t, messages, 4)
}

func TestHandleChatMessageForeignSessionGetsFreshOne(t *testing.T) {
	chatRepo := newFakeChatRepo()
	completion := &fakeCompletion{response: "Sure."}

	assistant := newTestAssistant(chatRepo, &fakeUserRepo{}, &stubSearchService{}, completion)

	owner := uuid.New()
	first, err := assistant.HandleChatMessage(context.Background(), owner, models.AssistantChatRequest{Message: "Hello"})
	require.NoError(t, err)

	intruder := uuid.New()
	second, err := assistant.HandleChatMessage(context.Background(), intruder, models.AssistantChatRequest{
		SessionID: &first.SessionID,
		Message:   "Hello too",
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
}

func TestChatSearchIntentRunsPipeline(t *testing.T) {
	chatRepo := newFakeChatRepo()
	search := &stubSearchService{response: &models.CandidateSearchResponse{
		JobTitle:           "Backend Developer",
		TotalProfilesFound: 2,
		ProcessedByAI:      2,
		Candidates: []models.CandidateMatch{
			{FullName: "Alex Petrov", MatchScore: 0.9},
			{FullName: "Ivan Smirnov", MatchScore: 0.6},
		},
	}}
	// Extraction succeeds via the LLM.
	completion := &fakeCompletion{response: `{"title": "Backend Developer", "required_skills": ["python"], "experience_level": "senior", "additional_requirements": ""}`}

	assistant := newTestAssistant(chatRepo, &fakeUserRepo{}, search, completion)

	response, err := assistant.HandleChatMessage(context.Background(), uuid.New(), models.AssistantChatRequest{
		Message: "Find candidates for a senior Python backend role",
	})
	require.NoError(t, err)

	assert.Equal(t, intentCandidateSearch, response.ResponseType)
	assert.Len(t, response.Candidates, 2)
	assert.Contains(t, response.Response, "Alex Petrov")
	assert.Equal(t, "Backend Developer", search.lastReq.JobTitle)
	assert.Equal(t, "senior", search.lastReq.ExperienceLevel)
}

func TestChatSearchIntentFallsBackToHeuristicExtraction(t *testing.T) {
	chatRepo := newFakeChatRepo()
	search := &stubSearchService{response: &models.CandidateSearchResponse{ProcessedByAI: 0}}
	completion := &fakeCompletion{err: assert.AnError}

	assistant := newTestAssistant(chatRepo, &fakeUserRepo{}, search, completion)

	response, err := assistant.HandleChatMessage(context.Background(), uuid.New(), models.AssistantChatRequest{
		Message: "Find candidates for a junior frontend position with react",
	})
	require.NoError(t, err)

	assert.Equal(t, intentCandidateSearch, response.ResponseType)
	assert.Equal(t, "Frontend Developer", search.lastReq.JobTitle)
	assert.Equal(t, "junior", search.lastReq.ExperienceLevel)
	assert.Contains(t, search.lastReq.RequiredSkills, "react")
}

func TestChatSearchIntentDegradedWhenPipelineFails(t *testing.T) {
	chatRepo := newFakeChatRepo()
	search := &stubSearchService{err: assert.AnError}
	completion := &fakeCompletion{response: `{"title": "Dev", "required_skills": [], "experience_level": "", "additional_requirements": ""}`}

	assistant := newTestAssistant(chatRepo, &fakeUserRepo{}, search, completion)

	response, err := assistant.HandleChatMessage(context.Background(), uuid.New(), models.AssistantChatRequest{
		Message: "Find candidates for a Dev role",
	})
	require.NoError(t, err, "pipeline failures must not fail the chat")

	assert.Equal(t, intentCandidateSearch, response.ResponseType)
	assert.NotEmpty(t, response.Response)
	assert.Empty(t, response.Candidates)
}

func TestChatConsultationDegradedOnProviderError(t *testing.T) {
	chatRepo := newFakeChatRepo()
	completion := &fakeCompletion{err: assert.AnError}

	assistant := newTestAssistant(chatRepo, &fakeUserRepo{}, &stubSearchService{}, completion)

	response, err := assistant.HandleChatMessage(context.Background(), uuid.New(), models.AssistantChatRequest{
		Message: "Give me some advice",
	})
	require.NoError(t, err, "provider failures must not fail the chat")

	assert.Equal(t, intentConsultation, response.ResponseType)
	assert.NotEmpty(t, response.Response)
}

func TestAnalyticsAggregatesSkills(t *testing.T) {
	users := []models.User{
		{Username: "a", ProgrammingLanguages: []string{"Python", "Go"}, About: "senior engineer"},
		{Username: "b", ProgrammingLanguages: []string{"python"}, OtherCompetencies: []string{"Docker"}, About: "junior dev"},
		{Username: "c", About: "no skills yet"},
	}
	for i := range users {
		users[i].ID = uuid.New()
		users[i].Role = models.RoleCandidate
		users[i].IsActive = true
	}

	assistant := newTestAssistant(newFakeChatRepo(), &fakeUserRepo{users: users}, &stubSearchService{}, &fakeCompletion{})

	analytics, err := assistant.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, analytics.TotalCandidates)
	assert.Equal(t, 2, analytics.FilledProfiles)

	// Case variants of python fold into one entry that tops the list.
	require.NotEmpty(t, analytics.TopSkills)
	assert.Equal(t, "Python", analytics.TopSkills[0].Skill)
	assert.Equal(t, 2, analytics.TopSkills[0].Count)

	assert.Equal(t, 1, analytics.ExperienceDistribution["senior"])
	assert.Equal(t, 1, analytics.ExperienceDistribution["junior"])
	assert.Equal(t, 1, analytics.ExperienceDistribution["unknown"])
}
