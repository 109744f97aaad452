package settings

import (
	"context"
	"sync"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

// MemoryStore keeps settings in a map.
type MemoryStore struct {
	mu       sync.RWMutex
	settings map[string]course.Settings
	puts     int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{settings: make(map[string]course.Settings)}
}

func (m *MemoryStore) Get(ctx context.Context, courseID string) (course.Settings, bool, error) {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return course.Settings{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.settings[courseID]
	return s, ok, nil
}

func (m *MemoryStore) Put(ctx context.Context, courseID string, s course.Settings) error {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[courseID] = s
	m.puts++
	return nil
}

// Puts returns how many times Put succeeded.
func (m *MemoryStore) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
