package settings

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

// FileStore keeps one TOML file per course: <dir>/<course>.toml.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store. If baseDir is empty it defaults
// to ~/.config/topcoll/courses/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "topcoll", "courses")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) settingsPath(courseID string) string {
	return filepath.Join(s.baseDir, courseID+".toml")
}

func (s *FileStore) Get(ctx context.Context, courseID string) (course.Settings, bool, error) {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return course.Settings{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.settingsPath(courseID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return course.Settings{}, false, nil
	}
	// Keys missing from the file keep their defaults.
	out := course.DefaultSettings()
	if _, err := toml.DecodeFile(path, &out); err != nil {
		return course.Settings{}, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse settings file %s", path)
	}
	return out, true, nil
}

func (s *FileStore) Put(ctx context.Context, courseID string, st course.Settings) error {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.settingsPath(courseID), buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for settings files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
