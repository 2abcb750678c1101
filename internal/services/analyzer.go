package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
)

// fallbackSummary is returned when the AI analysis of a candidate cannot
// complete and the deterministic score takes over.
const fallbackSummary = "Baseline score derived from profile vector similarity; AI analysis was unavailable"

// AIAnalyzer produces the final, authoritative match assessment for a single
// shortlisted candidate. Candidates are independent: a failure for one never
// affects the others.
type AIAnalyzer interface {
	Analyze(ctx context.Context, user *models.User, jobTitle, jobDescription string, similarityScore float64) models.CandidateMatch
}

type aiAnalyzer struct {
	completion    CompletionClient
	promptBuilder *PromptBuilder
	maxTokens     int
	temperature   float64
	logger        *zap.Logger
}

func NewAIAnalyzer(completion CompletionClient, maxTokens int, temperature float64, logger *zap.Logger) AIAnalyzer {
	return &aiAnalyzer{
		completion:    completion,
		promptBuilder: NewPromptBuilder(),
		maxTokens:     maxTokens,
		temperature:   temperature,
		logger:        logger.Named("analyzer"),
	}
}

// candidateAnalysis is the strict JSON shape the model must answer with.
// MatchScore is a pointer so a missing field is distinguishable from 0.0.
type candidateAnalysis struct {
	MatchScore  *float64 `json:"match_score"`
	Strengths   []string `json:"strengths"`
	GrowthAreas []string `json:"growth_areas"`
	Summary     string   `json:"summary"`
}

// Analyze implements AIAnalyzer. Completion or parse failures degrade to the
// deterministic fallback score; they are never surfaced to the caller.
func (a *aiAnalyzer) Analyze(ctx context.Context, user *models.User, jobTitle, jobDescription string, similarityScore float64) models.CandidateMatch {
	prompt := a.promptBuilder.BuildCandidateAnalysisPrompt(user, jobTitle, jobDescription, similarityScore)

	response, err := a.completion.Complete(ctx, recruiterSystemPrompt, prompt, a.maxTokens, a.temperature)
	if err != nil {
		a.logger.Warn("candidate analysis failed, using fallback score",
			zap.String("candidate_id", user.ID.String()), zap.String("stage", "completion"), zap.Error(err))
		return FallbackCandidateMatch(user, similarityScore)
	}

	analysis, err := parseCandidateAnalysis(response)
	if err != nil {
		a.logger.Warn("candidate analysis unparseable, using fallback score",
			zap.String("candidate_id", user.ID.String()), zap.String("stage", "parse"), zap.Error(err))
		return FallbackCandidateMatch(user, similarityScore)
	}

	match := newCandidateMatch(user, similarityScore)
	match.MatchScore = clampScore(*analysis.MatchScore)
	match.AISummary = analysis.Summary
	if match.AISummary == "" {
		match.AISummary = "Analysis unavailable"
	}
	match.Strengths = analysis.Strengths
	match.GrowthAreas = analysis.GrowthAreas
	return match
}

func parseCandidateAnalysis(response string) (*candidateAnalysis, error) {
	jsonStr := extractJSON(response)

	var analysis candidateAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if analysis.MatchScore == nil {
		return nil, fmt.Errorf("%w: missing match_score", ErrParseFailure)
	}
	return &analysis, nil
}

// extractJSON locates the first top-level JSON block in text that might
// contain markdown fences or surrounding prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

// FallbackCandidateMatch builds the deterministic non-AI assessment: a high
// similarity earns a modest boost capped at 0.8, anything else keeps the raw
// similarity as the score.
func FallbackCandidateMatch(user *models.User, similarityScore float64) models.CandidateMatch {
	baseScore := similarityScore
	if similarityScore > 0.5 {
		baseScore = math.Min(0.8, similarityScore+0.2)
	}

	match := newCandidateMatch(user, similarityScore)
	match.MatchScore = clampScore(math.Round(baseScore*100) / 100)
	match.AISummary = fallbackSummary
	if similarityScore > 0.6 {
		match.Strengths = []string{"Relevant experience on file"}
	} else {
		match.Strengths = []string{}
	}
	match.GrowthAreas = []string{"Needs further review"}
	return match
}

func newCandidateMatch(user *models.User, similarityScore float64) models.CandidateMatch {
	keySkills := user.OtherCompetencies
	if keySkills == nil {
		keySkills = []string{}
	}
	languages := user.ProgrammingLanguages
	if languages == nil {
		languages = []string{}
	}

	return models.CandidateMatch{
		UserID:               user.ID,
		FullName:             user.DisplayName(),
		Email:                user.Email,
		CurrentPosition:      user.CurrentPosition(),
		ExperienceYears:      user.ExperienceSummary(),
		KeySkills:            keySkills,
		ProgrammingLanguages: languages,
		SimilarityScore:      similarityScore,
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
