package services

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
)

// neutralSimilarity is assigned when a candidate's embedding cannot be
// obtained: similarity unknown, scored mid-range instead of failing the batch.
const neutralSimilarity = 0.5

// RankedCandidate pairs a candidate with its provisional similarity score.
type RankedCandidate struct {
	User       models.User
	Similarity float64
}

// SimilarityRanker orders candidates by cosine similarity between the job
// embedding and each cached profile embedding. The ranking is provisional: it
// selects which candidates are worth an LLM call, it is not the final answer.
type SimilarityRanker struct {
	store    VectorProfileStore
	embedder EmbeddingClient
	logger   *zap.Logger
}

func NewSimilarityRanker(store VectorProfileStore, embedder EmbeddingClient, logger *zap.Logger) *SimilarityRanker {
	return &SimilarityRanker{
		store:    store,
		embedder: embedder,
		logger:   logger.Named("ranker"),
	}
}

// Rank scores every candidate against the job embedding and returns the top
// candidates sorted by descending similarity, capped to limit. Ties keep the
// input order. A candidate whose embedding fails gets a neutral score rather
// than aborting the batch.
func (r *SimilarityRanker) Rank(ctx context.Context, jobEmbedding []float32, candidates []models.User, limit int) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))

	for i := range candidates {
		user := candidates[i]

		vector, err := r.store.GetOrCompute(ctx, &user, r.embedder)
		if err != nil {
			r.logger.Warn("profile embedding unavailable, scoring neutral",
				zap.String("candidate_id", user.ID.String()), zap.Error(err))
			ranked = append(ranked, RankedCandidate{User: user, Similarity: neutralSimilarity})
			continue
		}

		ranked = append(ranked, RankedCandidate{
			User:       user,
			Similarity: CosineSimilarity(jobEmbedding, vector),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CosineSimilarity computes dot(a,b) / (||a||·||b||), defined as exactly 0.0
// when either vector has zero norm or the dimensions do not match.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
