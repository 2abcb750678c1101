package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
)

func newTestSearchService(t *testing.T, userRepo *fakeUserRepo, store *fakeVectorStore, embedder *fakeEmbedder, completion *fakeCompletion) SearchService {
	t.Helper()

	logger := zap.NewNop()
	ranker := NewSimilarityRanker(store, embedder, logger)
	analyzer := NewAIAnalyzer(completion, 1000, 0.3, logger)

	service, err := NewSearchService(
		userRepo,
		NewSubstringCandidateFilter(logger),
		embedder,
		ranker,
		analyzer,
		2,
		logger,
	)
	require.NoError(t, err)
	t.Cleanup(service.Close)
	return service
}

func pythonTeamFixture() []models.User {
	users := []models.User{
		{Username: "py-senior", About: "Senior Python developer, backend services", ProgrammingLanguages: []string{"Python"}},
		{Username: "py-junior", About: "Junior Python developer", ProgrammingLanguages: []string{"Python"}},
		{Username: "py-data", About: "Python data analyst", ProgrammingLanguages: []string{"Python", "SQL"}},
		{Username: "js-dev", About: "Frontend developer", ProgrammingLanguages: []string{"JavaScript"}},
		{Username: "go-dev", About: "Go developer", ProgrammingLanguages: []string{"Go"}},
		{Username: "hr-user", About: "Recruiter"},
		{Username: "inactive", About: "Python developer", ProgrammingLanguages: []string{"Python"}},
	}
	for i := range users {
		users[i].ID = uuid.New()
		users[i].Email = users[i].Username + "@example.com"
		users[i].Role = models.RoleCandidate
		users[i].IsActive = true
	}
	users[5].Role = models.RoleHR
	users[6].IsActive = false
	return users
}

func analysisJSON(score float64) string {
	return fmt.Sprintf(`{"match_score": %.2f, "strengths": ["s"], "growth_areas": ["g"], "summary": "ok"}`, score)
}

func TestSearchCandidatesHappyPath(t *testing.T) {
	users := pythonTeamFixture()
	userRepo := &fakeUserRepo{users: users}
	store := newFakeVectorStore()
	embedder := newFakeEmbedder([]float32{1, 0})

	// Score candidates by name so the final order is observable.
	completion := &fakeCompletion{fn: func(userPrompt string) (string, error) {
		switch {
		case strings.Contains(userPrompt, "py-senior"):
			return analysisJSON(0.9), nil
		case strings.Contains(userPrompt, "py-junior"):
			return analysisJSON(0.4), nil
		default:
			return analysisJSON(0.6), nil
		}
	}}

	service := newTestSearchService(t, userRepo, store, embedder, completion)

	result, err := service.SearchCandidates(context.Background(), models.CandidateSearchRequest{
		JobTitle:       "Python Developer",
		JobDescription: "We need a Python developer",
		RequiredSkills: []string{"Python"},
	})
	require.NoError(t, err)

	// HR and inactive accounts are excluded, JS and Go devs filtered out.
	assert.Equal(t, 3, result.TotalProfilesFound)
	assert.Equal(t, 3, result.ProcessedByAI)
	require.Len(t, result.Candidates, 3)

	assert.Equal(t, 0.9, result.Candidates[0].MatchScore)
	assert.Equal(t, 0.6, result.Candidates[1].MatchScore)
	assert.Equal(t, 0.4, result.Candidates[2].MatchScore)

	assert.Contains(t, result.FiltersApplied, "skills: Python")
	assert.GreaterOrEqual(t, result.ProcessingTimeSeconds, 0.0)
}

func TestSearchSkipsKeywordPassUnderThreshold(t *testing.T) {
	users := pythonTeamFixture()
	userRepo := &fakeUserRepo{users: users}
	completion := &fakeCompletion{response: analysisJSON(0.5)}

	service := newTestSearchService(t, userRepo, newFakeVectorStore(), newFakeEmbedder([]float32{1, 0}), completion)

	result, err := service.SearchCandidates(context.Background(), models.CandidateSearchRequest{
		JobTitle:       "Backend Developer",
		JobDescription: "Backend role with docker",
	})
	require.NoError(t, err)

	for _, applied := range result.FiltersApplied {
		assert.NotContains(t, applied, "additional keywords")
	}
}

func TestSearchRunsKeywordPassOverThreshold(t *testing.T) {
	users := pythonTeamFixture()
	userRepo := &fakeUserRepo{users: users}
	completion := &fakeCompletion{response: analysisJSON(0.5)}

	service := newTestSearchService(t, userRepo, newFakeVectorStore(), newFakeEmbedder([]float32{1, 0}), completion)

	result, err := service.SearchCandidates(context.Background(), models.CandidateSearchRequest{
		JobTitle:             "Backend Developer",
		JobDescription:       "Backend role",
		ThresholdFilterLimit: 2,
	})
	require.NoError(t, err)

	// 5 active candidates exceed the threshold of 2, so the keyword pass runs
	// and keeps only profiles mentioning "backend".
	assert.Equal(t, 1, result.TotalProfilesFound)
	assert.Contains(t, result.FiltersApplied, "additional keywords: backend")
}

func TestSearchKeywordPassSkippedWithoutKnownTerms(t *testing.T) {
	users := pythonTeamFixture()
	userRepo := &fakeUserRepo{users: users}
	completion := &fakeCompletion{response: analysisJSON(0.5)}

	service := newTestSearchService(t, userRepo, newFakeVectorStore(), newFakeEmbedder([]float32{1, 0}), completion)

	result, err := service.SearchCandidates(context.Background(), models.CandidateSearchRequest{
		JobTitle:             "Developer",
		JobDescription:       "General position",
		ThresholdFilterLimit: 2,
	})
	require.NoError(t, err)

	// No known terms in the description: the large set passes through whole.
	assert.Equal(t, 5, result.TotalProfilesFound)
}

func TestSearchAbortsWhenJobEmbeddingFails(t *testing.T) {
	users := pythonTeamFixture()
	userRepo := &fakeUserRepo{users: users}
	embedder := newFakeEmbedder(nil)
	embedder.err = assert.AnError

	service := newTestSearchService(t, userRepo, newFakeVectorStore(), embedder, &fakeCompletion{response: analysisJSON(0.5)})

	_, err := service.SearchCandidates(context.Background(), models.CandidateSearchRequest{
		JobTitle:       "Python Developer",
		JobDescription: "desc",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrchestrationFailure)
}

func TestSearchUnanalyzableCandidateStillListed(t *testing.T) {
	users := pythonTeamFixture()
	userRepo := &fakeUserRepo{users: users}

	// One candidate's analysis is garbage, the rest parse fine.
	completion := &fakeCompletion{fn: func(userPrompt string) (string, error) {
		if strings.Contains(userPrompt, "py-junior") {
			return "not json at all", nil
		}
		return analysisJSON(0.7), nil
	}}

	service := newTestSearchService(t, userRepo, newFakeVectorStore(), newFakeEmbedder([]float32{1, 0}), completion)

	result, err := service.SearchCandidates(context.Background(), models.CandidateSearchRequest{
		JobTitle:       "Python Developer",
		JobDescription: "desc",
		RequiredSkills: []string{"Python"},
	})
	require.NoError(t, err)
	require.Len(t, result.Candidates, 3)

	var fallbackSeen bool
	for _, candidate := range result.Candidates {
		if candidate.AISummary == fallbackSummary {
			fallbackSeen = true
			assert.GreaterOrEqual(t, candidate.MatchScore, 0.0)
			assert.LessOrEqual(t, candidate.MatchScore, 1.0)
		}
	}
	assert.True(t, fallbackSeen, "fallback-scored candidate must stay in the result")
}

func TestSearchPopulationLoadFailureAborts(t *testing.T) {
	userRepo := &fakeUserRepo{findErr: assert.AnError}

	service := newTestSearchService(t, userRepo, newFakeVectorStore(), newFakeEmbedder([]float32{1, 0}), &fakeCompletion{})

	_, err := service.SearchCandidates(context.Background(), models.CandidateSearchRequest{
		JobTitle:       "Dev",
		JobDescription: "desc",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrchestrationFailure)
}

func TestSearchEmptyPopulationYieldsEmptyResult(t *testing.T) {
	userRepo := &fakeUserRepo{}

	service := newTestSearchService(t, userRepo, newFakeVectorStore(), newFakeEmbedder([]float32{1, 0}), &fakeCompletion{})

	result, err := service.SearchCandidates(context.Background(), models.CandidateSearchRequest{
		JobTitle:       "Dev",
		JobDescription: "desc",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalProfilesFound)
	assert.Equal(t, 0, result.ProcessedByAI)
	assert.NotNil(t, result.Candidates)
	assert.NotNil(t, result.FiltersApplied)
}
