package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
	"talentforge/hr-platform/internal/repositories"
)

// SearchService runs the full candidate search pipeline: filtering, job
// embedding, similarity ranking, per-candidate AI analysis, final ordering.
type SearchService interface {
	SearchCandidates(ctx context.Context, request models.CandidateSearchRequest) (*models.CandidateSearchResponse, error)
	Close()
}

type searchService struct {
	userRepo repositories.UserRepository
	filter   CandidateFilter
	embedder EmbeddingClient
	ranker   *SimilarityRanker
	analyzer AIAnalyzer
	pool     *ants.Pool
	logger   *zap.Logger
}

// NewSearchService wires the pipeline stages together. The analysis pool is
// shared across searches so provider concurrency stays bounded globally.
func NewSearchService(
	userRepo repositories.UserRepository,
	filter CandidateFilter,
	embedder EmbeddingClient,
	ranker *SimilarityRanker,
	analyzer AIAnalyzer,
	analysisConcurrency int,
	logger *zap.Logger,
) (SearchService, error) {
	if analysisConcurrency <= 0 {
		analysisConcurrency = 1
	}
	pool, err := ants.NewPool(analysisConcurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis pool: %w", err)
	}

	return &searchService{
		userRepo: userRepo,
		filter:   filter,
		embedder: embedder,
		ranker:   ranker,
		analyzer: analyzer,
		pool:     pool,
		logger:   logger.Named("search"),
	}, nil
}

// SearchCandidates implements SearchService.
func (s *searchService) SearchCandidates(ctx context.Context, request models.CandidateSearchRequest) (*models.CandidateSearchResponse, error) {
	start := time.Now()
	request.ApplyDefaults()

	s.logger.Info("starting candidate search", zap.String("job_title", request.JobTitle))

	population, err := s.userRepo.FindActiveCandidates()
	if err != nil {
		return nil, fmt.Errorf("%w: loading candidate population: %v", ErrOrchestrationFailure, err)
	}

	// Step 1: basic filters over the active non-HR population.
	var appliedFilters []string
	baseCandidates := s.filter.Filter(population, request.RequiredSkills, request.ExperienceLevel)

	if len(request.RequiredSkills) > 0 {
		appliedFilters = append(appliedFilters, "skills: "+strings.Join(request.RequiredSkills, ", "))
	}
	if request.ExperienceLevel != "" {
		appliedFilters = append(appliedFilters, "experience: "+request.ExperienceLevel)
	}

	s.logger.Info("basic filtering complete",
		zap.Int("population", len(population)), zap.Int("matched", len(baseCandidates)))

	// Step 2: additional keyword pass, only when the set is still too large.
	filteredCandidates := baseCandidates
	if len(baseCandidates) > request.ThresholdFilterLimit {
		keywords := s.filter.ExtractKeyTerms(request.JobDescription)
		if len(keywords) > 0 {
			filteredCandidates = s.filter.FilterByKeywords(baseCandidates, keywords)

			mention := keywords
			if len(mention) > 3 {
				mention = mention[:3]
			}
			appliedFilters = append(appliedFilters, "additional keywords: "+strings.Join(mention, ", "))

			s.logger.Info("additional filtering complete",
				zap.Strings("keywords", keywords), zap.Int("remaining", len(filteredCandidates)))
		}
	}

	// Step 3: job embedding. There is no per-item fallback here: a failure
	// aborts the search and the caller retries.
	jobEmbedding, err := s.embedder.Embed(ctx, JobText(request.JobTitle, request.JobDescription))
	if err != nil {
		return nil, fmt.Errorf("%w: job embedding: %v", ErrOrchestrationFailure, err)
	}

	// Step 4: provisional similarity shortlist.
	shortlist := s.ranker.Rank(ctx, jobEmbedding, filteredCandidates, request.MaxCandidates)

	// Step 5: independent AI analysis per shortlisted candidate, bounded by
	// the shared pool. Each slot is written exactly once; results merge only
	// after every candidate (or its fallback) completed.
	s.logger.Info("analyzing shortlist", zap.Int("count", len(shortlist)))
	analyzed := make([]models.CandidateMatch, len(shortlist))

	var wg sync.WaitGroup
	for i := range shortlist {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			candidate := shortlist[i]
			analyzed[i] = s.analyzer.Analyze(ctx, &candidate.User, request.JobTitle, request.JobDescription, candidate.Similarity)
		}
		if err := s.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	// Step 6: final order is the AI score, stable on ties.
	sort.SliceStable(analyzed, func(i, j int) bool {
		return analyzed[i].MatchScore > analyzed[j].MatchScore
	})

	elapsed := time.Since(start).Seconds()
	s.logger.Info("search completed",
		zap.Int("total_found", len(filteredCandidates)),
		zap.Int("processed_by_ai", len(analyzed)),
		zap.Float64("elapsed_seconds", elapsed))

	if appliedFilters == nil {
		appliedFilters = []string{}
	}

	return &models.CandidateSearchResponse{
		JobTitle:              request.JobTitle,
		TotalProfilesFound:    len(filteredCandidates),
		ProcessedByAI:         len(analyzed),
		FiltersApplied:        appliedFilters,
		Candidates:            analyzed,
		ProcessingTimeSeconds: roundSeconds(elapsed),
	}, nil
}

// Close implements SearchService.
func (s *searchService) Close() {
	s.pool.Release()
}

func roundSeconds(seconds float64) float64 {
	return float64(int(seconds*100+0.5)) / 100
}
