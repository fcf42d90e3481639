// Package dashboard holds the view-state machine and the presentation
// mapping for the reading-progress dashboard. State values are immutable;
// every transition returns a new value, so there is no ambient mutable
// navigation state to keep consistent.
package dashboard

import (
	"fmt"
	"strings"

	"readboard/internal/models"
)

// Screen identifies which view the dashboard is showing.
type Screen string

const (
	ScreenOverview      Screen = "students-overview"
	ScreenStudentDetail Screen = "student-detail"
	ScreenBookDetail    Screen = "book-detail"
)

// ViewMode selects grid or list rendering for the student overview.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// ParseViewMode validates a raw view mode string.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewModeGrid, ViewModeList:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// State is the dashboard's navigation and display state. It lives only in
// memory for a single session and is never persisted.
type State struct {
	Screen            Screen
	SelectedStudentID string
	SelectedBookID    string
	ViewMode          ViewMode
	Search            string
}

// NewState returns the initial state: the student overview in grid mode.
func NewState() State {
	return State{Screen: ScreenOverview, ViewMode: ViewModeGrid}
}

// SelectStudent moves from the overview to the student detail screen.
// Outside the overview the call is a no-op.
func (s State) SelectStudent(studentID string) State {
	if s.Screen != ScreenOverview {
		return s
	}
	s.Screen = ScreenStudentDetail
	s.SelectedStudentID = studentID
	return s
}

// SelectBook moves from the student detail to the book detail screen.
// Requires a student already selected; otherwise the call is a no-op.
func (s State) SelectBook(bookID string) State {
	if s.Screen != ScreenStudentDetail || s.SelectedStudentID == "" {
		return s
	}
	s.Screen = ScreenBookDetail
	s.SelectedBookID = bookID
	return s
}

// Back steps one level up: book detail returns to the student detail
// (clearing the book), student detail returns to the overview (clearing the
// student). On the overview it is a no-op.
func (s State) Back() State {
	switch s.Screen {
	case ScreenBookDetail:
		s.Screen = ScreenStudentDetail
		s.SelectedBookID = ""
	case ScreenStudentDetail:
		s.Screen = ScreenOverview
		s.SelectedStudentID = ""
	}
	return s
}

// WithViewMode switches grid/list rendering without touching navigation.
func (s State) WithViewMode(mode ViewMode) State {
	s.ViewMode = mode
	return s
}

// WithSearch updates the overview search filter. The filter only applies on
// the overview screen; elsewhere the call is a no-op.
func (s State) WithSearch(text string) State {
	if s.Screen != ScreenOverview {
		return s
	}
	s.Search = text
	return s
}

// VisibleStudents filters the student collection by the state's search
// text, matching case-insensitively on a name substring.
func (s State) VisibleStudents(students []models.Student) []models.Student {
	if s.Search == "" {
		return students
	}

	needle := strings.ToLower(s.Search)
	var visible []models.Student
	for _, student := range students {
		if strings.Contains(strings.ToLower(student.Name), needle) {
			visible = append(visible, student)
		}
	}
	return visible
}
