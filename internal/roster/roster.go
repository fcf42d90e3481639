// Package roster loads the full student aggregate for one teacher from the
// upstream data service and normalizes it into the in-memory domain model.
package roster

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"readboard/internal/models"
	"readboard/internal/stats"
	"readboard/internal/storage"
)

// ErrDataUnavailable wraps any fetch failure at the student, book or
// session level. A load either returns the complete aggregate or nothing.
var ErrDataUnavailable = errors.New("reading data unavailable")

// Snapshot is one complete, immutable load of the teacher's classroom.
// A fresh load replaces the whole snapshot; it is never mutated in place.
type Snapshot struct {
	Teacher  models.Teacher
	Students []models.Student
}

// Loader assembles snapshots from a Storage backend.
type Loader struct {
	db     storage.Storage
	logger *zap.Logger
}

// NewLoader creates a snapshot loader
func NewLoader(db storage.Storage, logger *zap.Logger) *Loader {
	return &Loader{db: db, logger: logger}
}

// Load fetches the teacher's students with their books and sessions.
// Book fetches fan out one goroutine per student, session fetches one per
// book. Any failure aborts the whole load; no partial snapshot is returned.
func (l *Loader) Load(ctx context.Context, teacherID string) (Snapshot, error) {
	teacherRec, err := l.db.GetTeacher(ctx, teacherID)
	if err != nil {
		l.logger.Error("Failed to fetch teacher", zap.Error(err), zap.String("teacher_id", teacherID))
		return Snapshot{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	studentRecs, err := l.db.ListStudents(ctx, teacherID)
	if err != nil {
		l.logger.Error("Failed to fetch students", zap.Error(err), zap.String("teacher_id", teacherID))
		return Snapshot{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	students := make([]models.Student, len(studentRecs))

	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range studentRecs {
		g.Go(func() error {
			student, err := l.loadStudent(gctx, rec)
			if err != nil {
				return err
			}
			students[i] = student
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.logger.Error("Failed to load student aggregate", zap.Error(err), zap.String("teacher_id", teacherID))
		return Snapshot{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	l.logger.Debug("Snapshot loaded",
		zap.String("teacher_id", teacherID),
		zap.Int("students", len(students)),
	)

	return Snapshot{
		Teacher: models.Teacher{
			ID:    teacherRec.ID,
			Name:  teacherRec.Name,
			Email: teacherRec.Email,
		},
		Students: students,
	}, nil
}

// loadStudent fetches one student's books concurrently and derives the
// student's aggregate fields.
func (l *Loader) loadStudent(ctx context.Context, rec storage.StudentRecord) (models.Student, error) {
	bookRecs, err := l.db.ListStudentBooks(ctx, rec.ID)
	if err != nil {
		return models.Student{}, fmt.Errorf("student %s: %w", rec.ID, err)
	}

	books := make([]models.StudentBook, len(bookRecs))

	g, gctx := errgroup.WithContext(ctx)
	for i, bookRec := range bookRecs {
		g.Go(func() error {
			sessionRecs, err := l.db.ListSessions(gctx, bookRec.ID)
			if err != nil {
				return fmt.Errorf("student book %s: %w", bookRec.ID, err)
			}
			book, err := normalizeStudentBook(bookRec, sessionRecs)
			if err != nil {
				return err
			}
			books[i] = book
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Student{}, err
	}

	student := models.Student{
		ID:    rec.ID,
		Name:  rec.Name,
		Books: books,
	}
	if rec.Avatar != nil {
		student.Avatar = *rec.Avatar
	}

	// Derived fields are recomputed on every load, never stored
	student.TotalBooksCompleted = stats.TotalBooksCompleted(books)
	student.AverageProgress = stats.AverageProgress(books)

	return student, nil
}

// normalizeStudentBook converts a raw assignment row into the domain model:
// nil cover becomes an empty string, a missing assigned date falls back to
// the record creation timestamp.
func normalizeStudentBook(rec storage.StudentBookRecord, sessionRecs []storage.SessionRecord) (models.StudentBook, error) {
	status, err := models.ParseStatus(rec.Status)
	if err != nil {
		return models.StudentBook{}, fmt.Errorf("student book %s: %w", rec.ID, err)
	}

	book := models.StudentBook{
		ID: rec.ID,
		Book: models.Book{
			ID:     rec.BookID,
			Title:  rec.BookTitle,
			Author: rec.BookAuthor,
		},
		Status:       status,
		Progress:     int(rec.Progress),
		AssignedDate: rec.CreatedAt,
		Sessions:     make([]models.ReadingSession, len(sessionRecs)),
	}
	if rec.BookCover != nil {
		book.Book.Cover = *rec.BookCover
	}
	if rec.TotalPages != nil {
		book.Book.TotalPages = int(*rec.TotalPages)
	}
	if rec.AssignedDate != nil {
		book.AssignedDate = *rec.AssignedDate
	}
	if rec.LastReadDate != nil {
		book.LastReadDate = *rec.LastReadDate
	}

	// Sessions arrive date descending from storage; order is preserved
	for i, sessionRec := range sessionRecs {
		book.Sessions[i] = models.ReadingSession{
			ID:        sessionRec.ID,
			Date:      sessionRec.Date,
			PagesRead: int(sessionRec.PagesRead),
			TimeSpent: int(sessionRec.TimeSpent),
		}
		if sessionRec.Notes != nil {
			book.Sessions[i].Notes = *sessionRec.Notes
		}
	}

	return book, nil
}
