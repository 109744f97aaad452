package togglestate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps one JSON file per course and user:
// <dir>/<course>/<user>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store. If baseDir is empty it defaults
// to ~/.config/topcoll/toggles/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "topcoll", "toggles")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create toggle dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(courseID, userID string) string {
	return filepath.Join(s.baseDir, courseID, userID+".json")
}

func (s *FileStore) Get(ctx context.Context, courseID, userID string) (State, bool, error) {
	if err := validateIDs(courseID, userID); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(courseID, userID))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read toggle file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", false, fmt.Errorf("parse toggle file: %w", err)
	}
	if err := rec.State.Validate(); err != nil {
		return "", false, err
	}
	return rec.State, true, nil
}

func (s *FileStore) Set(ctx context.Context, courseID, userID string, st State) error {
	if err := validateIDs(courseID, userID); err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(Record{
		CourseID:  courseID,
		UserID:    userID,
		State:     st,
		UpdatedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal toggle state: %w", err)
	}

	path := s.recordPath(courseID, userID)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create course dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write toggle file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, courseID, userID string) error {
	if err := validateIDs(courseID, userID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(courseID, userID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove toggle file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for toggle files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
