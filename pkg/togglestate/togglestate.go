// Package togglestate persists which section toggles a user has open.
//
// A [State] is a compact string with one character per content section:
// '1' for open and '0' for closed, section 1 first. It is the value stored
// per user and course by every [Store] implementation:
//   - [MemoryStore]: process-local, for tests and the HTTP server default
//   - [FileStore]: JSON files for the CLI, under ~/.config/topcoll/toggles/
//   - [RedisStore]: shared across server instances
//
// A user without a stored state sees every section closed.
package togglestate

import (
	"context"
	"strings"
	"time"

	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

const (
	closed = '0'
	open   = '1'
)

// State is the open/closed flag of sections 1..N.
type State string

// New returns a state of n closed sections.
func New(n int) State {
	if n < 0 {
		n = 0
	}
	return State(strings.Repeat(string(closed), n))
}

// Parse validates s and resizes it to n sections.
func Parse(s string, n int) (State, error) {
	st := State(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st.Resize(n), nil
}

// Validate reports a state containing anything but '0' and '1'.
func (s State) Validate() error {
	for i, r := range s {
		if r != closed && r != open {
			return errors.New(errors.ErrCodeInvalidToggles,
				"toggle state: invalid character %q at position %d", r, i+1)
		}
	}
	return nil
}

// Len is the number of sections the state covers.
func (s State) Len() int { return len(s) }

// IsOpen reports whether section n is open. Unknown sections are closed.
func (s State) IsOpen(n int) bool {
	return n >= 1 && n <= len(s) && s[n-1] == open
}

// Open opens section n.
func (s State) Open(n int) State { return s.set(n, open) }

// Close closes section n.
func (s State) Close(n int) State { return s.set(n, closed) }

// Toggle flips section n.
func (s State) Toggle(n int) State {
	if s.IsOpen(n) {
		return s.Close(n)
	}
	return s.Open(n)
}

// OpenAll opens every section.
func (s State) OpenAll() State {
	return State(strings.Repeat(string(open), len(s)))
}

// CloseAll closes every section.
func (s State) CloseAll() State {
	return New(len(s))
}

// Resize truncates or pads the state with closed sections to n sections.
func (s State) Resize(n int) State {
	if n < 0 {
		n = 0
	}
	if len(s) >= n {
		return s[:n]
	}
	return s + New(n-len(s))
}

// OpenSections lists the open section numbers in ascending order.
func (s State) OpenSections() []int {
	var out []int
	for i := 0; i < len(s); i++ {
		if s[i] == open {
			out = append(out, i+1)
		}
	}
	return out
}

func (s State) set(n int, c byte) State {
	if n < 1 || n > len(s) {
		return s
	}
	b := []byte(s)
	b[n-1] = c
	return State(b)
}

// Record is the stored form of a state.
type Record struct {
	CourseID  string    `json:"course_id"`
	UserID    string    `json:"user_id"`
	State     State     `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists toggle states per course and user.
type Store interface {
	// Get returns the stored state and whether one exists.
	Get(ctx context.Context, courseID, userID string) (State, bool, error)
	// Set stores a state. Invalid states are rejected.
	Set(ctx context.Context, courseID, userID string, s State) error
	// Delete removes a stored state. Deleting a missing state is not an error.
	Delete(ctx context.Context, courseID, userID string) error
	Close() error
}

// Load returns the stored state resized to n sections, or n closed
// sections when nothing is stored.
func Load(ctx context.Context, store Store, courseID, userID string, n int) (State, error) {
	s, ok, err := store.Get(ctx, courseID, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return New(n), nil
	}
	return s.Resize(n), nil
}

func validateIDs(courseID, userID string) error {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return err
	}
	return errors.ValidateUserID(userID)
}
