package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/core/navigation"
	"github.com/uofr/moodle-format-topcoll/pkg/core/text"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
	courseio "github.com/uofr/moodle-format-topcoll/pkg/io"
	"github.com/uofr/moodle-format-topcoll/pkg/pipeline"
	"github.com/uofr/moodle-format-topcoll/pkg/settings"
	"github.com/uofr/moodle-format-topcoll/pkg/togglestate"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Layout
// =============================================================================

// layoutRequest is the body of POST /v1/layout. Editing and now override
// the values inside course when given.
type layoutRequest struct {
	Course    course.Course            `json:"course"`
	Sections  []courseio.SectionRecord `json:"sections"`
	Settings  *course.Settings         `json:"settings,omitempty"`
	Editing   *bool                    `json:"editing,omitempty"`
	Now       *time.Time               `json:"now,omitempty"`
	CanUpdate bool                     `json:"can_update,omitempty"`
	Selector  int                      `json:"selector,omitempty"`
	Refresh   bool                     `json:"refresh,omitempty"`

	// Marker marks a section as current when CanSetCurrent is set.
	Marker        *int `json:"marker,omitempty"`
	CanSetCurrent bool `json:"can_set_current,omitempty"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	// Settings keys missing from the body keep the server defaults.
	defaults := s.cfg.Defaults
	req := layoutRequest{Settings: &defaults}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	fallback := s.cfg.Defaults
	if req.Settings != nil {
		fallback = *req.Settings
	}
	cf, err := courseio.NewCourseFile(req.Course, fallback, req.Sections)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c := cf.Course
	if req.Editing != nil {
		c.Editing = *req.Editing
	}
	if req.Now != nil {
		c.Now = *req.Now
	}

	result, err := s.cfg.Runner.Execute(r.Context(), pipeline.Options{
		Course:    c,
		Sections:  cf.Sections,
		Settings:  &fallback,
		CanUpdate: req.CanUpdate,
		Selector:  req.Selector,
		Refresh:   req.Refresh,
		Clock:     s.cfg.Clock,

		Marker:        req.Marker,
		CanSetCurrent: req.CanSetCurrent,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Settings
// =============================================================================

type settingsResponse struct {
	CourseID  string          `json:"course_id"`
	Settings  course.Settings `json:"settings"`
	Stored    bool            `json:"stored"`
	Corrected bool            `json:"corrected"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	st, stored, err := settings.Load(r.Context(), s.cfg.Settings, courseID, s.cfg.Defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{
		CourseID: courseID,
		Settings: st.Clamp(),
		Stored:   stored,
	})
}

// handlePutSettings stores the clamped body. Keys missing from the body
// keep their current values.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	current, _, err := settings.Load(r.Context(), s.cfg.Settings, courseID, s.cfg.Defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	next := current
	if err := decode(w, r, &next); err != nil {
		s.writeError(w, r, err)
		return
	}

	clamped := next.Clamp()
	if err := s.cfg.Settings.Put(r.Context(), courseID, clamped); err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeStoreUnavailable, err, "store settings for course %s", courseID)
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{
		CourseID:  courseID,
		Settings:  clamped,
		Stored:    true,
		Corrected: clamped != next,
	})
}

// =============================================================================
// Toggles
// =============================================================================

type togglesRequest struct {
	State togglestate.State `json:"state"`
}

type togglesResponse struct {
	CourseID string            `json:"course_id"`
	UserID   string            `json:"user_id"`
	State    togglestate.State `json:"state"`
	Open     []int             `json:"open"`
	Stored   bool              `json:"stored"`
}

func newTogglesResponse(courseID, userID string, st togglestate.State, stored bool) togglesResponse {
	open := st.OpenSections()
	if open == nil {
		open = []int{}
	}
	return togglesResponse{CourseID: courseID, UserID: userID, State: st, Open: open, Stored: stored}
}

// handleGetToggles returns the stored state. ?sections=n resizes it to the
// course's section count.
func (s *Server) handleGetToggles(w http.ResponseWriter, r *http.Request) {
	courseID, userID := chi.URLParam(r, "courseID"), chi.URLParam(r, "userID")
	st, stored, err := s.cfg.Toggles.Get(r.Context(), courseID, userID)
	if err != nil {
		s.writeError(w, r, storeError(err, "load toggles"))
		return
	}
	if raw := r.URL.Query().Get("sections"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "sections must be a non-negative number: %q", raw))
			return
		}
		st = st.Resize(n)
	}
	writeJSON(w, http.StatusOK, newTogglesResponse(courseID, userID, st, stored))
}

func (s *Server) handlePutToggles(w http.ResponseWriter, r *http.Request) {
	courseID, userID := chi.URLParam(r, "courseID"), chi.URLParam(r, "userID")
	var req togglesRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.State.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cfg.Toggles.Set(r.Context(), courseID, userID, req.State); err != nil {
		s.writeError(w, r, storeError(err, "store toggles"))
		return
	}
	writeJSON(w, http.StatusOK, newTogglesResponse(courseID, userID, req.State, true))
}

func (s *Server) handleDeleteToggles(w http.ResponseWriter, r *http.Request) {
	courseID, userID := chi.URLParam(r, "courseID"), chi.URLParam(r, "userID")
	if err := s.cfg.Toggles.Delete(r.Context(), courseID, userID); err != nil {
		s.writeError(w, r, storeError(err, "delete toggles"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// storeError marks uncoded store failures as unavailable.
func storeError(err error, op string) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "%s", op)
}

// =============================================================================
// Truncate
// =============================================================================

type truncateRequest struct {
	Text string `json:"text"`
	Max  *int   `json:"max,omitempty"`
}

type truncateResponse struct {
	Text      string `json:"text"`
	Shortened bool   `json:"shortened"`
}

func (s *Server) handleTruncate(w http.ResponseWriter, r *http.Request) {
	var req truncateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	limit := navigation.LabelLength
	if req.Max != nil {
		if *req.Max < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "max must not be negative: %d", *req.Max))
			return
		}
		limit = *req.Max
	}
	writeJSON(w, http.StatusOK, truncateResponse{
		Text:      text.Truncate(req.Text, limit),
		Shortened: text.Shortened(req.Text, limit),
	})
}
