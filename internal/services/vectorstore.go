package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
)

// VectorProfileStore is the persistent cache of candidate profile embeddings,
// keyed by user id. Vectors may be stale relative to the latest profile edits;
// the refresher recomputes them opportunistically. Entries are never deleted
// automatically.
type VectorProfileStore interface {
	// InitCollection makes sure the backing collection exists.
	InitCollection(ctx context.Context) error

	// Get returns the cached vector for a candidate, reporting absence
	// without error.
	Get(ctx context.Context, candidateID uuid.UUID) ([]float32, bool, error)

	// Put overwrites the candidate's vector. Overwriting with an equivalent
	// vector is harmless, so no mutual exclusion is needed per id.
	Put(ctx context.Context, candidateID uuid.UUID, vector []float32) error

	// GetOrCompute returns the cached vector, lazily computing and persisting
	// it from the profile text when absent. Two concurrent calls for the same
	// candidate may both compute; at-least-once is the guarantee.
	GetOrCompute(ctx context.Context, candidate *models.User, embedder EmbeddingClient) ([]float32, error)

	// UpdatedAt reports when the candidate's vector was last written.
	UpdatedAt(ctx context.Context, candidateID uuid.UUID) (time.Time, bool, error)
}

type qdrantProfileStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewQdrantProfileStore(urlStr, apiKey, collectionName string, vectorSize int, logger *zap.Logger) (VectorProfileStore, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantProfileStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
		logger:         logger.Named("vectorstore"),
	}, nil
}

// InitCollection creates the profile collection when it does not exist yet.
func (s *qdrantProfileStore) InitCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	s.logger.Info("created qdrant collection", zap.String("collection", s.collectionName))
	return nil
}

// Get implements VectorProfileStore.
func (s *qdrantProfileStore) Get(ctx context.Context, candidateID uuid.UUID) ([]float32, bool, error) {
	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(candidateID.String())},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get profile vector: %w", err)
	}
	if len(points) == 0 {
		return nil, false, nil
	}

	vector := points[0].GetVectors().GetVector().GetData()
	if len(vector) == 0 {
		return nil, false, nil
	}
	return vector, true, nil
}

// Put implements VectorProfileStore. The point id equals the user id, so the
// upsert is an idempotent full overwrite.
func (s *qdrantProfileStore) Put(ctx context.Context, candidateID uuid.UUID, vector []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(candidateID.String()),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"user_id":    candidateID.String(),
			"updated_at": time.Now().UTC().Format(time.RFC3339),
		}),
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert profile vector: %w", err)
	}
	return nil
}

// GetOrCompute implements VectorProfileStore.
func (s *qdrantProfileStore) GetOrCompute(ctx context.Context, candidate *models.User, embedder EmbeddingClient) ([]float32, error) {
	vector, found, err := s.Get(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	if found {
		return vector, nil
	}

	vector, err = embedder.Embed(ctx, ProfileText(candidate))
	if err != nil {
		return nil, err
	}

	if err := s.Put(ctx, candidate.ID, vector); err != nil {
		// The vector is still usable for this search even if caching failed.
		s.logger.Warn("failed to cache profile vector",
			zap.String("candidate_id", candidate.ID.String()), zap.Error(err))
	}

	return vector, nil
}

// UpdatedAt implements VectorProfileStore.
func (s *qdrantProfileStore) UpdatedAt(ctx context.Context, candidateID uuid.UUID) (time.Time, bool, error) {
	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(candidateID.String())},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get profile vector payload: %w", err)
	}
	if len(points) == 0 {
		return time.Time{}, false, nil
	}

	raw, ok := points[0].GetPayload()["updated_at"]
	if !ok {
		return time.Time{}, true, nil
	}
	ts, err := time.Parse(time.RFC3339, raw.GetStringValue())
	if err != nil {
		return time.Time{}, true, nil
	}
	return ts, true, nil
}
