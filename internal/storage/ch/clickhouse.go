package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"readboard/internal/storage"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	// Configure TLS if enabled
	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	// Test the connection
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	// Tables are managed via migrations (see migrations/ directory)
	// This method is kept for interface compatibility
	return nil
}

// GetTeacher returns the teacher account record
func (db *ClickHouseDB) GetTeacher(ctx context.Context, teacherID string) (storage.TeacherRecord, error) {
	row := db.conn.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = ?`, teacherID)

	var teacher storage.TeacherRecord
	if err := row.Scan(&teacher.ID, &teacher.Name, &teacher.Email); err != nil {
		return storage.TeacherRecord{}, fmt.Errorf("failed to get teacher: %w", err)
	}
	return teacher, nil
}

// ListStudents returns all students belonging to the teacher
func (db *ClickHouseDB) ListStudents(ctx context.Context, teacherID string) ([]storage.StudentRecord, error) {
	rows, err := db.conn.Query(ctx,
		`SELECT id, name, avatar FROM students WHERE user_id = ? ORDER BY name`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []storage.StudentRecord
	for rows.Next() {
		var student storage.StudentRecord
		if err := rows.Scan(&student.ID, &student.Name, &student.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}
	return students, nil
}

// ListStudentBooks returns the student's assignments joined with their books
func (db *ClickHouseDB) ListStudentBooks(ctx context.Context, studentID string) ([]storage.StudentBookRecord, error) {
	rows, err := db.conn.Query(ctx, `
		SELECT
			sb.id, sb.book_id, sb.status, sb.progress,
			sb.last_read_date, sb.assigned_date, sb.created_at,
			b.title, b.author, b.cover, b.total_pages
		FROM student_books sb
		INNER JOIN books b ON sb.book_id = b.id
		WHERE sb.student_id = ?`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list student books: %w", err)
	}
	defer rows.Close()

	var books []storage.StudentBookRecord
	for rows.Next() {
		var book storage.StudentBookRecord
		if err := rows.Scan(
			&book.ID, &book.BookID, &book.Status, &book.Progress,
			&book.LastReadDate, &book.AssignedDate, &book.CreatedAt,
			&book.BookTitle, &book.BookAuthor, &book.BookCover, &book.TotalPages,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student book: %w", err)
		}
		books = append(books, book)
	}
	return books, nil
}

// ListSessions returns the reading sessions for one student book, newest first
func (db *ClickHouseDB) ListSessions(ctx context.Context, studentBookID string) ([]storage.SessionRecord, error) {
	rows, err := db.conn.Query(ctx, `
		SELECT id, date, pages_read, time_spent, notes
		FROM sessions
		WHERE student_book_id = ?
		ORDER BY date DESC`, studentBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []storage.SessionRecord
	for rows.Next() {
		var session storage.SessionRecord
		if err := rows.Scan(&session.ID, &session.Date, &session.PagesRead, &session.TimeSpent, &session.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
