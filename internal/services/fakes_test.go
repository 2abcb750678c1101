package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"talentforge/hr-platform/internal/models"
)

// fakeEmbedder returns canned vectors keyed by a substring of the input text,
// falling back to a default vector.
type fakeEmbedder struct {
	mu       sync.Mutex
	vectors  map[string][]float32
	fallback []float32
	err      error
	calls    int
}

func newFakeEmbedder(fallback []float32) *fakeEmbedder {
	return &fakeEmbedder{
		vectors:  make(map[string][]float32),
		fallback: fallback,
	}
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailure, f.err)
	}
	for key, vector := range f.vectors {
		if key != "" && containsAny(text, key) {
			return vector, nil
		}
	}
	return f.fallback, nil
}

func (f *fakeEmbedder) Dimension() int {
	return len(f.fallback)
}

// fakeVectorStore is an in-memory VectorProfileStore with the same lazy
// GetOrCompute contract as the real one.
type fakeVectorStore struct {
	mu      sync.Mutex
	vectors map[uuid.UUID][]float32
	updated map[uuid.UUID]time.Time
	getErr  error
	putErr  error
	puts    int
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{
		vectors: make(map[uuid.UUID][]float32),
		updated: make(map[uuid.UUID]time.Time),
	}
}

func (f *fakeVectorStore) InitCollection(ctx context.Context) error {
	return nil
}

func (f *fakeVectorStore) Get(ctx context.Context, candidateID uuid.UUID) ([]float32, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, false, f.getErr
	}
	vector, found := f.vectors[candidateID]
	return vector, found, nil
}

func (f *fakeVectorStore) Put(ctx context.Context, candidateID uuid.UUID, vector []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putErr != nil {
		return f.putErr
	}
	f.vectors[candidateID] = vector
	f.updated[candidateID] = time.Now()
	f.puts++
	return nil
}

func (f *fakeVectorStore) GetOrCompute(ctx context.Context, candidate *models.User, embedder EmbeddingClient) ([]float32, error) {
	vector, found, err := f.Get(ctx, candidate.ID)
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
	_ = f.Put(ctx, candidate.ID, vector)
	return vector, nil
}

func (f *fakeVectorStore) UpdatedAt(ctx context.Context, candidateID uuid.UUID) (time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ts, found := f.updated[candidateID]
	return ts, found, nil
}

// fakeCompletion answers every Complete call with a fixed response, a fixed
// error, or a per-prompt function.
type fakeCompletion struct {
	mu       sync.Mutex
	response string
	err      error
	fn       func(userPrompt string) (string, error)
	calls    int
}

func (f *fakeCompletion) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.fn != nil {
		return f.fn(userPrompt)
	}
	if f.err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletionFailure, f.err)
	}
	return f.response, nil
}

// fakeUserRepo serves a fixed candidate slice.
type fakeUserRepo struct {
	users   []models.User
	findErr error
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserRepo) FindActiveCandidates() ([]models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.User
	for _, u := range f.users {
		if u.Role == models.RoleCandidate && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindCandidatesUpdatedSince(since time.Time, limit int) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == models.RoleCandidate && u.IsActive && u.UpdatedAt.After(since) {
			out = append(out, u)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountCandidates() (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Role == models.RoleCandidate && u.IsActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) CountCandidatesWithSkills() (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Role == models.RoleCandidate && u.IsActive && len(u.ProgrammingLanguages) > 0 {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) UpdateAbout(id uuid.UUID, about string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].About = about
			return nil
		}
	}
	return fmt.Errorf("user not found")
}

// fakeChatRepo keeps sessions and messages in memory.
type fakeChatRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.ChatSession
	messages []models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{sessions: make(map[uuid.UUID]*models.ChatSession)}
}

func (f *fakeChatRepo) CreateSession(session *models.ChatSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeChatRepo) FindSession(id, userID uuid.UUID) (*models.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok || session.UserID != userID {
		return nil, fmt.Errorf("chat session not found")
	}
	return session, nil
}

func (f *fakeChatRepo) FindSessionsByUser(userID uuid.UUID, limit int) ([]models.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChatSession
	for _, session := range f.sessions {
		if session.UserID == userID {
			out = append(out, *session)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeChatRepo) TouchSession(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session, ok := f.sessions[id]; ok {
		session.LastActivityAt = time.Now()
	}
	return nil
}

func (f *fakeChatRepo) AppendMessage(message *models.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeChatRepo) FindMessages(sessionID uuid.UUID) ([]models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChatMessage
	for _, message := range f.messages {
		if message.SessionID == sessionID {
			out = append(out, message)
		}
	}
	return out, nil
}
