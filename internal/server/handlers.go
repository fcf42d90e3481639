package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"readboard/internal/dashboard"
	"readboard/internal/models"
	"readboard/internal/roster"
)

// load fetches a fresh snapshot for the configured teacher. Each request
// performs exactly one load; the snapshot is immutable for the rest of the
// request, so the handlers never see partially updated data.
func (s *Server) load(ctx context.Context, w http.ResponseWriter) (roster.Snapshot, bool) {
	snap, err := s.loader.Load(ctx, s.teacherID)
	if err != nil {
		if errors.Is(err, roster.ErrDataUnavailable) {
			writeErr(w, http.StatusServiceUnavailable, "could not load reading data")
		} else {
			s.logger.Error("Unexpected load failure", zap.Error(err))
			writeErr(w, http.StatusInternalServerError, "internal error")
		}
		return roster.Snapshot{}, false
	}
	return snap, true
}

func findStudent(students []models.Student, id string) (models.Student, bool) {
	for _, student := range students {
		if student.ID == id {
			return student, true
		}
	}
	return models.Student{}, false
}

func findBook(student models.Student, bookID string) (models.StudentBook, bool) {
	for _, book := range student.Books {
		if book.ID == bookID {
			return book, true
		}
	}
	return models.StudentBook{}, false
}

// getTeacher returns the account the dashboard is rendered for
func (s *Server) getTeacher(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.Teacher)
}

// listStudents returns the full aggregated roster
func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(r.Context(), w)
	if !ok {
		return
	}

	cards := make([]dashboard.StudentCardView, 0, len(snap.Students))
	for _, student := range snap.Students {
		cards = append(cards, dashboard.BuildStudentCard(student))
	}

	writeJSON(w, http.StatusOK, map[string]any{"students": cards})
}

// getStudent returns one student's detail view
func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(r.Context(), w)
	if !ok {
		return
	}

	student, ok := findStudent(snap.Students, chi.URLParam(r, "id"))
	if !ok {
		writeErr(w, http.StatusNotFound, "student not found")
		return
	}

	writeJSON(w, http.StatusOK, dashboard.BuildStudentDetail(student))
}

// getStudentBook returns the book detail view for one assignment
func (s *Server) getStudentBook(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(r.Context(), w)
	if !ok {
		return
	}

	student, ok := findStudent(snap.Students, chi.URLParam(r, "id"))
	if !ok {
		writeErr(w, http.StatusNotFound, "student not found")
		return
	}

	book, ok := findBook(student, chi.URLParam(r, "bookID"))
	if !ok {
		writeErr(w, http.StatusNotFound, "book not found")
		return
	}

	writeJSON(w, http.StatusOK, dashboard.BuildBookDetail(student.Name, book))
}

// getOverview returns the class totals and the narrative summary
func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(r.Context(), w)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, dashboard.BuildOverview(snap.Teacher, snap.Students, dashboard.NewState()))
}
