package models

import (
	"fmt"
	"time"
)

// Status describes where a student is with an assigned book.
type Status string

const (
	StatusYetToStart Status = "yet-to-start"
	StatusReading    Status = "reading"
	StatusCompleted  Status = "completed"
	StatusPaused     Status = "paused"
)

// ParseStatus converts a raw status string from the data store into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusYetToStart, StatusReading, StatusCompleted, StatusPaused:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown book status %q", s)
}

// Book is immutable reference data, created and updated outside this service.
type Book struct {
	ID         string
	Title      string
	Author     string
	Cover      string
	TotalPages int // 0 when unknown
}

// ReadingSession is one recorded reading event for a student book.
type ReadingSession struct {
	ID        string
	Date      time.Time
	PagesRead int
	TimeSpent int // minutes
	Notes     string
}

// StudentBook is the assignment of a Book to a Student, carrying
// progress, status and the recorded reading sessions (date descending).
type StudentBook struct {
	ID           string
	Book         Book
	Status       Status
	Progress     int       // 0-100, passed through as stored
	LastReadDate time.Time // zero when the book was never read
	AssignedDate time.Time
	Sessions     []ReadingSession
}

// HasLastRead reports whether the book was ever opened.
func (sb StudentBook) HasLastRead() bool {
	return !sb.LastReadDate.IsZero()
}

// Student is the aggregate root. TotalBooksCompleted and AverageProgress
// are derived on every load, never persisted.
type Student struct {
	ID                  string
	Name                string
	Avatar              string
	Books               []StudentBook
	TotalBooksCompleted int
	AverageProgress     int
}

// Teacher identifies the account the dashboard is loaded for.
type Teacher struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
