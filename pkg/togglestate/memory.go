package togglestate

import (
	"context"
	"sync"
)

// MemoryStore keeps states in a map.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func memoryKey(courseID, userID string) string {
	return courseID + "\x00" + userID
}

func (m *MemoryStore) Get(ctx context.Context, courseID, userID string) (State, bool, error) {
	if err := validateIDs(courseID, userID); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[memoryKey(courseID, userID)]
	return s, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, courseID, userID string, s State) error {
	if err := validateIDs(courseID, userID); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[memoryKey(courseID, userID)] = s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, courseID, userID string) error {
	if err := validateIDs(courseID, userID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, memoryKey(courseID, userID))
	return nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
