package stubs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"readboard/internal/storage"
)

// MockDB is an in-memory implementation of the Storage interface, used by
// tests and by USE_MOCK_DB mode for local development.
type MockDB struct {
	mu            sync.RWMutex
	teachers      map[string]storage.TeacherRecord
	students      map[string]storage.StudentRecord
	studentOwner  map[string]string // student ID -> teacher ID
	studentBooks  map[string][]storage.StudentBookRecord
	sessions      map[string][]storage.SessionRecord
	teacherErr    error
	studentsErr   error
	booksErr      error
	sessionsErr   error
	seedTeacherID string
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		teachers:     make(map[string]storage.TeacherRecord),
		students:     make(map[string]storage.StudentRecord),
		studentOwner: make(map[string]string),
		studentBooks: make(map[string][]storage.StudentBookRecord),
		sessions:     make(map[string][]storage.SessionRecord),
	}
}

// AddTeacher registers a teacher account and returns its ID.
func (m *MockDB) AddTeacher(name, email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.teachers[id] = storage.TeacherRecord{ID: id, Name: name, Email: email}
	return id
}

// AddStudent registers a student for the teacher and returns the student ID.
func (m *MockDB) AddStudent(teacherID, name string, avatar *string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.students[id] = storage.StudentRecord{ID: id, Name: name, Avatar: avatar}
	m.studentOwner[id] = teacherID
	return id
}

// AddStudentBook attaches an assignment record to the student and returns
// the assignment ID. An empty rec.ID is replaced with a fresh one.
func (m *MockDB) AddStudentBook(studentID string, rec storage.StudentBookRecord) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.studentBooks[studentID] = append(m.studentBooks[studentID], rec)
	return rec.ID
}

// AddSession attaches a session record to the student book and returns the
// session ID. An empty rec.ID is replaced with a fresh one.
func (m *MockDB) AddSession(studentBookID string, rec storage.SessionRecord) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.sessions[studentBookID] = append(m.sessions[studentBookID], rec)
	return rec.ID
}

// FailWith makes the chosen fetch level return err until reset with nil.
// Level is one of "teacher", "students", "books", "sessions".
func (m *MockDB) FailWith(level string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch level {
	case "teacher":
		m.teacherErr = err
	case "students":
		m.studentsErr = err
	case "books":
		m.booksErr = err
	case "sessions":
		m.sessionsErr = err
	}
}

// SeedTeacherID returns the teacher created by Initialize.
func (m *MockDB) SeedTeacherID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seedTeacherID
}

// Initialize seeds a demo classroom so mock mode renders something useful
func (m *MockDB) Initialize(ctx context.Context) error {
	teacherID := m.AddTeacher("Sarah Johnson", "sarah.johnson@school.edu")

	m.mu.Lock()
	m.seedTeacherID = teacherID
	m.mu.Unlock()

	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	ptr := func(t time.Time) *time.Time { return &t }
	str := func(s string) *string { return &s }
	pages := func(n int32) *int32 { return &n }

	mockingbird := uuid.NewString()
	gatsby := uuid.NewString()
	orwell := uuid.NewString()

	emma := m.AddStudent(teacherID, "Emma Watson", str("/placeholder.svg"))
	emmaReading := m.AddStudentBook(emma, storage.StudentBookRecord{
		BookID:       mockingbird,
		Status:       "reading",
		Progress:     65,
		LastReadDate: ptr(day("2024-06-14")),
		AssignedDate: ptr(day("2024-06-01")),
		CreatedAt:    day("2024-06-01"),
		BookTitle:    "To Kill a Mockingbird",
		BookAuthor:   "Harper Lee",
		BookCover:    str("/placeholder.svg"),
		TotalPages:   pages(376),
	})
	m.AddSession(emmaReading, storage.SessionRecord{
		Date: day("2024-06-14"), PagesRead: 25, TimeSpent: 45, Notes: str("Great progress today!"),
	})
	m.AddSession(emmaReading, storage.SessionRecord{
		Date: day("2024-06-12"), PagesRead: 30, TimeSpent: 60,
	})
	m.AddStudentBook(emma, storage.StudentBookRecord{
		BookID:       gatsby,
		Status:       "completed",
		Progress:     100,
		LastReadDate: ptr(day("2024-06-10")),
		AssignedDate: ptr(day("2024-05-15")),
		CreatedAt:    day("2024-05-15"),
		BookTitle:    "The Great Gatsby",
		BookAuthor:   "F. Scott Fitzgerald",
		BookCover:    str("/placeholder.svg"),
		TotalPages:   pages(180),
	})

	john := m.AddStudent(teacherID, "John Smith", str("/placeholder.svg"))
	johnReading := m.AddStudentBook(john, storage.StudentBookRecord{
		BookID:       orwell,
		Status:       "reading",
		Progress:     30,
		LastReadDate: ptr(day("2024-06-13")),
		AssignedDate: ptr(day("2024-06-05")),
		CreatedAt:    day("2024-06-05"),
		BookTitle:    "1984",
		BookAuthor:   "George Orwell",
		BookCover:    str("/placeholder.svg"),
		TotalPages:   pages(328),
	})
	m.AddSession(johnReading, storage.SessionRecord{
		Date: day("2024-06-13"), PagesRead: 20, TimeSpent: 35,
	})

	sophie := m.AddStudent(teacherID, "Sophie Chen", str("/placeholder.svg"))
	m.AddStudentBook(sophie, storage.StudentBookRecord{
		BookID:       mockingbird,
		Status:       "completed",
		Progress:     100,
		LastReadDate: ptr(day("2024-06-08")),
		AssignedDate: ptr(day("2024-05-20")),
		CreatedAt:    day("2024-05-20"),
		BookTitle:    "To Kill a Mockingbird",
		BookAuthor:   "Harper Lee",
		BookCover:    str("/placeholder.svg"),
		TotalPages:   pages(376),
	})

	return nil
}

// GetTeacher returns the teacher account record
func (m *MockDB) GetTeacher(ctx context.Context, teacherID string) (storage.TeacherRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.teacherErr != nil {
		return storage.TeacherRecord{}, m.teacherErr
	}

	teacher, ok := m.teachers[teacherID]
	if !ok {
		return storage.TeacherRecord{}, fmt.Errorf("teacher %s not found", teacherID)
	}
	return teacher, nil
}

// ListStudents returns the teacher's students sorted by name
func (m *MockDB) ListStudents(ctx context.Context, teacherID string) ([]storage.StudentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.studentsErr != nil {
		return nil, m.studentsErr
	}

	var students []storage.StudentRecord
	for id, owner := range m.studentOwner {
		if owner == teacherID {
			students = append(students, m.students[id])
		}
	}

	// Sort by name, matching the ClickHouse query
	sort.Slice(students, func(i, j int) bool {
		return students[i].Name < students[j].Name
	})

	return students, nil
}

// ListStudentBooks returns the student's assignments in insertion order
func (m *MockDB) ListStudentBooks(ctx context.Context, studentID string) ([]storage.StudentBookRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.booksErr != nil {
		return nil, m.booksErr
	}

	books := make([]storage.StudentBookRecord, len(m.studentBooks[studentID]))
	copy(books, m.studentBooks[studentID])
	return books, nil
}

// ListSessions returns the student book's sessions sorted by date descending
func (m *MockDB) ListSessions(ctx context.Context, studentBookID string) ([]storage.SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.sessionsErr != nil {
		return nil, m.sessionsErr
	}

	sessions := make([]storage.SessionRecord, len(m.sessions[studentBookID]))
	copy(sessions, m.sessions[studentBookID])
	// Stable sort keeps insertion order among same-date sessions
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	return sessions, nil
}

// Close does nothing for mock DB
func (m *MockDB) Close() error {
	return nil
}
