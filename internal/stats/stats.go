// Package stats derives aggregate reading statistics from an already
// fetched snapshot. Every function is pure: no I/O, no stored state, the
// same input always yields the same output.
package stats

import (
	"math"

	"readboard/internal/models"
)

// TargetBooksPerStudent is the assumed reading goal used when rating the
// class completion rate.
const TargetBooksPerStudent = 3

// TotalBooksCompleted counts the student's books with status completed.
func TotalBooksCompleted(books []models.StudentBook) int {
	count := 0
	for _, book := range books {
		if book.Status == models.StatusCompleted {
			count++
		}
	}
	return count
}

// AverageProgress returns the rounded mean progress across the student's
// books, 0 when the student has no books. Rounding is half-up.
func AverageProgress(books []models.StudentBook) int {
	if len(books) == 0 {
		return 0
	}

	sum := 0
	for _, book := range books {
		sum += book.Progress
	}
	return int(math.Round(float64(sum) / float64(len(books))))
}

// CurrentlyReading picks the book the student is actively on: among books
// with status reading, the one with the latest last-read date. A missing
// date sorts earliest. Ties keep the first-encountered book. The second
// return value is false when no book has status reading.
func CurrentlyReading(books []models.StudentBook) (models.StudentBook, bool) {
	var current models.StudentBook
	found := false

	for _, book := range books {
		if book.Status != models.StatusReading {
			continue
		}
		if !found || book.LastReadDate.After(current.LastReadDate) {
			current = book
			found = true
		}
	}

	return current, found
}

// ActiveBooks counts the student's books with status reading.
func ActiveBooks(books []models.StudentBook) int {
	count := 0
	for _, book := range books {
		if book.Status == models.StatusReading {
			count++
		}
	}
	return count
}

// SessionTotals summarizes one student book's recorded sessions.
type SessionTotals struct {
	TotalPages   int
	TotalMinutes int
	Count        int
	AvgMinutes   float64 // 0 when there are no sessions
}

// Sessions sums pages, minutes and session count for a student book.
func Sessions(book models.StudentBook) SessionTotals {
	totals := SessionTotals{Count: len(book.Sessions)}
	for _, session := range book.Sessions {
		totals.TotalPages += session.PagesRead
		totals.TotalMinutes += session.TimeSpent
	}
	if totals.Count > 0 {
		totals.AvgMinutes = float64(totals.TotalMinutes) / float64(totals.Count)
	}
	return totals
}

// ClassOverview aggregates the headline numbers shown above the student
// collection.
type ClassOverview struct {
	Students        int
	TotalBooks      int
	TotalCompleted  int
	AverageProgress int // rounded mean of per-student average progress
	ActiveReaders   int // students with at least one book in progress
}

// Overview computes the class-wide totals from the student snapshot.
func Overview(students []models.Student) ClassOverview {
	overview := ClassOverview{Students: len(students)}

	progressSum := 0
	for _, student := range students {
		overview.TotalBooks += len(student.Books)
		overview.TotalCompleted += student.TotalBooksCompleted
		progressSum += student.AverageProgress
		if ActiveBooks(student.Books) > 0 {
			overview.ActiveReaders++
		}
	}
	if len(students) > 0 {
		overview.AverageProgress = int(math.Round(float64(progressSum) / float64(len(students))))
	}

	return overview
}

// SummaryTier rates the class as a whole; the tier drives which narrative
// sentence the dashboard shows.
type SummaryTier int

const (
	TierStarting SummaryTier = iota
	TierFoundation
	TierEngagement
	TierSolidProgress
	TierExcelling
)

// Summarize selects the class summary tier from completion and
// active-reading rates. The completion rate measures finished books against
// TargetBooksPerStudent per student; the active rate measures how many
// students currently have a book in progress.
func Summarize(students []models.Student) SummaryTier {
	if len(students) == 0 {
		return TierStarting
	}

	overview := Overview(students)
	completionRate := float64(overview.TotalCompleted) / float64(len(students)*TargetBooksPerStudent)
	activeRate := float64(overview.ActiveReaders) / float64(len(students))

	switch {
	case completionRate >= 0.80 && activeRate >= 0.70:
		return TierExcelling
	case completionRate >= 0.60 && activeRate >= 0.50:
		return TierSolidProgress
	case activeRate >= 0.60:
		return TierEngagement
	case overview.TotalCompleted >= 20:
		return TierFoundation
	default:
		return TierStarting
	}
}

// Sentence returns the canned narrative for the tier. The wording is
// cosmetic; only the tier selection above is contractual.
func (t SummaryTier) Sentence() string {
	switch t {
	case TierExcelling:
		return "The class is excelling: most students are finishing their books and nearly everyone has an active read going."
	case TierSolidProgress:
		return "Solid progress across the class, with a healthy share of finished books and active readers."
	case TierEngagement:
		return "Engagement is strong: most students have a book in progress, with completions still building up."
	case TierFoundation:
		return "A good foundation is in place, with a meaningful stack of completed books across the class."
	default:
		return "The class is just getting started on its reading journey."
	}
}
