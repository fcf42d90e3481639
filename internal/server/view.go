package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"readboard/internal/dashboard"
)

// stateView is the navigation state echoed back after every transition.
type stateView struct {
	Screen          dashboard.Screen   `json:"screen"`
	SelectedStudent string             `json:"selected_student,omitempty"`
	SelectedBook    string             `json:"selected_book,omitempty"`
	ViewMode        dashboard.ViewMode `json:"view_mode"`
	Search          string             `json:"search,omitempty"`
}

func toStateView(state dashboard.State) stateView {
	return stateView{
		Screen:          state.Screen,
		SelectedStudent: state.SelectedStudentID,
		SelectedBook:    state.SelectedBookID,
		ViewMode:        state.ViewMode,
		Search:          state.Search,
	}
}

// currentState reads the session state under the lock.
func (s *Server) currentState() dashboard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// transition applies fn to the session state and returns the new value.
func (s *Server) transition(fn func(dashboard.State) dashboard.State) dashboard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// getView renders whichever screen the session is on from a fresh
// snapshot. The whole aggregate is loaded before anything is rendered, so
// the screen never shows partial data.
func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(r.Context(), w)
	if !ok {
		return
	}

	state := s.currentState()

	switch state.Screen {
	case dashboard.ScreenStudentDetail, dashboard.ScreenBookDetail:
		student, ok := findStudent(snap.Students, state.SelectedStudentID)
		if !ok {
			// The selection no longer exists in the fresh snapshot
			s.logger.Warn("Selected student missing from snapshot, resetting view",
				zap.String("student_id", state.SelectedStudentID))
			state = s.transition(func(dashboard.State) dashboard.State { return dashboard.NewState() })
			break
		}
		if state.Screen == dashboard.ScreenStudentDetail {
			writeJSON(w, http.StatusOK, map[string]any{
				"state":   toStateView(state),
				"student": dashboard.BuildStudentDetail(student),
			})
			return
		}
		book, ok := findBook(student, state.SelectedBookID)
		if !ok {
			s.logger.Warn("Selected book missing from snapshot, returning to student",
				zap.String("book_id", state.SelectedBookID))
			state = s.transition(dashboard.State.Back)
			writeJSON(w, http.StatusOK, map[string]any{
				"state":   toStateView(state),
				"student": dashboard.BuildStudentDetail(student),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"state": toStateView(state),
			"book":  dashboard.BuildBookDetail(student.Name, book),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"state":    toStateView(state),
		"overview": dashboard.BuildOverview(snap.Teacher, snap.Students, state),
	})
}

// viewSelectStudent navigates from the overview into a student
func (s *Server) viewSelectStudent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state := s.transition(func(st dashboard.State) dashboard.State {
		return st.SelectStudent(id)
	})
	writeJSON(w, http.StatusOK, toStateView(state))
}

// viewSelectBook navigates from a student into one of their books
func (s *Server) viewSelectBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state := s.transition(func(st dashboard.State) dashboard.State {
		return st.SelectBook(id)
	})
	writeJSON(w, http.StatusOK, toStateView(state))
}

// viewBack steps one navigation level up
func (s *Server) viewBack(w http.ResponseWriter, r *http.Request) {
	state := s.transition(dashboard.State.Back)
	writeJSON(w, http.StatusOK, toStateView(state))
}

// viewSetMode toggles grid/list rendering of the overview
func (s *Server) viewSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode, err := dashboard.ParseViewMode(req.Mode)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	state := s.transition(func(st dashboard.State) dashboard.State {
		return st.WithViewMode(mode)
	})
	writeJSON(w, http.StatusOK, toStateView(state))
}

// viewSetSearch updates the overview search filter
func (s *Server) viewSetSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Search string `json:"search"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state := s.transition(func(st dashboard.State) dashboard.State {
		return st.WithSearch(req.Search)
	})
	writeJSON(w, http.StatusOK, toStateView(state))
}
