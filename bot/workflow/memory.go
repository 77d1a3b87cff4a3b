package workflow

import (
	"context"
	"sync"
)

// MemoryStateStorage keeps drafts in process memory. It backs tests
// and runs without a configured MongoDB; drafts do not survive a
// restart.
type MemoryStateStorage struct {
	mu     sync.RWMutex
	states map[int64]*UserState
}

func NewMemoryStateStorage() *MemoryStateStorage {
	return &MemoryStateStorage{states: make(map[int64]*UserState)}
}

func (s *MemoryStateStorage) Save(_ context.Context, state *UserState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.UserID] = state
	return nil
}

func (s *MemoryStateStorage) Load(_ context.Context, userID int64) (*UserState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[userID]
	if !ok {
		return nil, nil
	}
	return state, nil
}

func (s *MemoryStateStorage) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
	return nil
}

func (s *MemoryStateStorage) Exists(_ context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.states[userID]
	return ok, nil
}
