package services

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
	"talentforge/hr-platform/internal/repositories"
)

// EmbeddingRefresher keeps cached profile vectors close to the latest profile
// edits. It is opportunistic: searches never wait for it, a stale vector only
// means a slightly off provisional ranking until the next sweep.
type EmbeddingRefresher interface {
	Start(ctx context.Context)
	Stop()
}

type embeddingRefresher struct {
	userRepo repositories.UserRepository
	store    VectorProfileStore
	embedder EmbeddingClient
	interval time.Duration
	batch    int
	pool     *ants.Pool
	logger   *zap.Logger

	wg        sync.WaitGroup
	stopChan  chan struct{}
	lastSweep time.Time
}

func NewEmbeddingRefresher(
	userRepo repositories.UserRepository,
	store VectorProfileStore,
	embedder EmbeddingClient,
	interval time.Duration,
	batch int,
	logger *zap.Logger,
) (EmbeddingRefresher, error) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if batch <= 0 {
		batch = 25
	}
	pool, err := ants.NewPool(2)
	if err != nil {
		return nil, err
	}

	return &embeddingRefresher{
		userRepo: userRepo,
		store:    store,
		embedder: embedder,
		interval: interval,
		batch:    batch,
		pool:     pool,
		logger:   logger.Named("refresher"),
		stopChan: make(chan struct{}),
		// First sweep covers the last day of edits so a restart does not
		// leave recently changed profiles stale until their next edit.
		lastSweep: time.Now().Add(-24 * time.Hour),
	}, nil
}

// Start implements EmbeddingRefresher.
func (r *embeddingRefresher) Start(ctx context.Context) {
	r.logger.Info("starting embedding refresher",
		zap.Duration("interval", r.interval), zap.Int("batch", r.batch))

	r.wg.Add(1)
	go r.loop(ctx)
}

// Stop implements EmbeddingRefresher.
func (r *embeddingRefresher) Stop() {
	close(r.stopChan)
	r.wg.Wait()
	r.pool.Release()
	r.logger.Info("embedding refresher stopped")
}

func (r *embeddingRefresher) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// sweep recomputes vectors for candidates whose profile changed since the
// previous sweep. Failures are logged and retried naturally on the next tick
// because lastSweep only advances past candidates it saw.
func (r *embeddingRefresher) sweep(ctx context.Context) {
	sweepStart := time.Now()

	candidates, err := r.userRepo.FindCandidatesUpdatedSince(r.lastSweep, r.batch)
	if err != nil {
		r.logger.Warn("failed to load updated candidates", zap.Error(err))
		return
	}
	if len(candidates) == 0 {
		r.lastSweep = sweepStart
		return
	}

	r.logger.Info("refreshing profile embeddings", zap.Int("count", len(candidates)))

	var wg sync.WaitGroup
	for i := range candidates {
		candidate := candidates[i]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			r.refreshOne(ctx, &candidate)
		}
		if err := r.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	// A full batch probably means more rows are waiting; keep lastSweep at
	// the newest row processed so the next tick picks up where this one ended.
	if len(candidates) == r.batch {
		r.lastSweep = candidates[len(candidates)-1].UpdatedAt
	} else {
		r.lastSweep = sweepStart
	}
}

func (r *embeddingRefresher) refreshOne(ctx context.Context, candidate *models.User) {
	vectorUpdatedAt, found, err := r.store.UpdatedAt(ctx, candidate.ID)
	if err != nil {
		r.logger.Warn("failed to read vector timestamp",
			zap.String("candidate_id", candidate.ID.String()), zap.Error(err))
		return
	}
	if found && !vectorUpdatedAt.Before(candidate.UpdatedAt) {
		return
	}

	vector, err := r.embedder.Embed(ctx, ProfileText(candidate))
	if err != nil {
		r.logger.Warn("failed to recompute profile embedding",
			zap.String("candidate_id", candidate.ID.String()), zap.Error(err))
		return
	}
	if err := r.store.Put(ctx, candidate.ID, vector); err != nil {
		r.logger.Warn("failed to store refreshed embedding",
			zap.String("candidate_id", candidate.ID.String()), zap.Error(err))
		return
	}

	r.logger.Debug("profile embedding refreshed", zap.String("candidate_id", candidate.ID.String()))
}
