package quiz

import (
	"context"
	"math/rand"
	"sync"
)

// MemoryStore is an in-memory QuestionRepository + AttemptRepository. It
// backs the CLI runner and tests; the server uses the SQL store.
type MemoryStore struct {
	mu        sync.RWMutex
	questions map[string]Question
	order     []string
	attempts  map[string]Attempt
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		questions: make(map[string]Question),
		attempts:  make(map[string]Attempt),
	}
}

// NewSeededMemoryStore builds a store preloaded with the bundled question
// set.
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	_ = s.PutQuestions(context.Background(), DefaultQuestions())
	return s
}

func (s *MemoryStore) PutQuestions(_ context.Context, questions []Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range questions {
		if _, seen := s.questions[q.ID]; !seen {
			s.order = append(s.order, q.ID)
		}
		s.questions[q.ID] = q
	}
	return nil
}

func (s *MemoryStore) QuestionsForSource(_ context.Context, source BookSource, count int) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Question, 0, count)
	for _, id := range s.order {
		q := s.questions[id]
		if source == BookSourceBoth || q.Source == source {
			matched = append(matched, q)
		}
	}
	if len(matched) == 0 {
		return nil, ErrQuestionBankEmpty
	}

	// Shuffle so repeat sessions do not replay the identical sequence.
	rand.Shuffle(len(matched), func(i, j int) { matched[i], matched[j] = matched[j], matched[i] })
	if count > 0 && len(matched) > count {
		matched = matched[:count]
	}
	return matched, nil
}

func (s *MemoryStore) SaveAttempt(_ context.Context, attempt Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.attempts[attempt.SessionID]; exists {
		return ErrAttemptExists
	}
	s.attempts[attempt.SessionID] = attempt
	return nil
}

func (s *MemoryStore) GetAttempt(_ context.Context, sessionID string) (Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[sessionID]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	return attempt, nil
}
