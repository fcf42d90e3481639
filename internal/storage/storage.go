package storage

import (
	"context"
	"time"
)

// TeacherRecord is the raw teacher row from the data store.
type TeacherRecord struct {
	ID    string
	Name  string
	Email string
}

// StudentRecord is the raw student row. Avatar is nil when not set.
type StudentRecord struct {
	ID     string
	Name   string
	Avatar *string
}

// StudentBookRecord is the raw assignment row joined with its book.
// Nullable columns come back as pointers; normalization (cover defaulting,
// assigned-date fallback to created_at) happens in the roster loader.
type StudentBookRecord struct {
	ID           string
	BookID       string
	Status       string
	Progress     int32
	LastReadDate *time.Time
	AssignedDate *time.Time
	CreatedAt    time.Time

	BookTitle  string
	BookAuthor string
	BookCover  *string
	TotalPages *int32
}

// SessionRecord is the raw reading session row. Notes is nil when empty.
type SessionRecord struct {
	ID        string
	Date      time.Time
	PagesRead int32
	TimeSpent int32
	Notes     *string
}

// Storage defines the interface for the upstream data service.
// The dashboard only reads; all records are created externally.
type Storage interface {
	// GetTeacher returns the account the dashboard is rendered for.
	GetTeacher(ctx context.Context, teacherID string) (TeacherRecord, error)

	// ListStudents returns all students belonging to the teacher.
	ListStudents(ctx context.Context, teacherID string) ([]StudentRecord, error)

	// ListStudentBooks returns the student's book assignments joined with
	// their books. Order between assignments is not significant.
	ListStudentBooks(ctx context.Context, studentID string) ([]StudentBookRecord, error)

	// ListSessions returns the reading sessions for one student book,
	// sorted by date descending.
	ListSessions(ctx context.Context, studentBookID string) ([]SessionRecord, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
