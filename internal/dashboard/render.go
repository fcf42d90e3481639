package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"readboard/internal/models"
	"readboard/internal/stats"
)

// StatusDisplay carries the badge attributes for one book status.
type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// statusDisplays is the exhaustive status-to-badge mapping.
var statusDisplays = map[models.Status]StatusDisplay{
	models.StatusCompleted:  {Label: "completed", Color: "green"},
	models.StatusReading:    {Label: "reading", Color: "blue"},
	models.StatusPaused:     {Label: "paused", Color: "yellow"},
	models.StatusYetToStart: {Label: "yet to start", Color: "gray"},
}

// StatusFor returns the display attributes for a status. Unknown values
// fall back to the yet-to-start badge, matching how the UI treats them.
func StatusFor(status models.Status) StatusDisplay {
	if d, ok := statusDisplays[status]; ok {
		return d
	}
	return statusDisplays[models.StatusYetToStart]
}

// Initials builds the avatar badge text from the first letter of each
// name word ("Emma Watson" -> "EW").
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// FormatDate renders a date for display, empty for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// FormatHours renders total reading minutes as rounded whole hours.
func FormatHours(minutes int) string {
	return fmt.Sprintf("%dh", int(math.Round(float64(minutes)/60)))
}

// CurrentReadView is the "currently reading" cell on a student card.
type CurrentReadView struct {
	BookID   string `json:"book_id"`
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	LastRead string `json:"last_read,omitempty"`
}

// StudentCardView is one student entry on the overview screen.
type StudentCardView struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Initials        string           `json:"initials"`
	Avatar          string           `json:"avatar,omitempty"`
	BooksAssigned   int              `json:"books_assigned"`
	BooksCompleted  int              `json:"books_completed"`
	ActiveBooks     int              `json:"active_books"`
	AverageProgress int              `json:"average_progress"`
	CurrentRead     *CurrentReadView `json:"current_read,omitempty"`
}

// OverviewView is the full overview screen: class totals, the narrative
// summary and the visible (search-filtered) student collection.
type OverviewView struct {
	Teacher         models.Teacher    `json:"teacher"`
	TotalStudents   int               `json:"total_students"`
	TotalBooks      int               `json:"total_books"`
	TotalCompleted  int               `json:"total_completed"`
	AverageProgress int               `json:"average_progress"`
	Summary         string            `json:"summary"`
	ViewMode        ViewMode          `json:"view_mode"`
	Search          string            `json:"search,omitempty"`
	Students        []StudentCardView `json:"students"`
}

// BookRowView is one assigned book on the student detail screen.
type BookRowView struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Author       string        `json:"author"`
	Cover        string        `json:"cover,omitempty"`
	Status       StatusDisplay `json:"status"`
	Progress     int           `json:"progress"`
	AssignedDate string        `json:"assigned_date"`
	LastReadDate string        `json:"last_read_date,omitempty"`
}

// StudentDetailView is the student detail screen.
type StudentDetailView struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Initials        string        `json:"initials"`
	BooksCompleted  int           `json:"books_completed"`
	BooksAssigned   int           `json:"books_assigned"`
	AverageProgress int           `json:"average_progress"`
	ActiveBooks     int           `json:"active_books"`
	Books           []BookRowView `json:"books"`
}

// SessionView is one recorded reading session on the book detail screen.
type SessionView struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	PagesRead int    `json:"pages_read"`
	TimeSpent int    `json:"time_spent"`
	Notes     string `json:"notes,omitempty"`
}

// BookDetailView is the book detail screen with its session summary.
type BookDetailView struct {
	ID             string        `json:"id"`
	StudentName    string        `json:"student_name"`
	Title          string        `json:"title"`
	Author         string        `json:"author"`
	Cover          string        `json:"cover,omitempty"`
	TotalPages     int           `json:"total_pages,omitempty"`
	Status         StatusDisplay `json:"status"`
	Progress       int           `json:"progress"`
	TotalTime      string        `json:"total_time"`
	TotalPagesRead int           `json:"total_pages_read"`
	SessionCount   int           `json:"session_count"`
	AvgMinutes     float64       `json:"avg_minutes"`
	Sessions       []SessionView `json:"sessions"`
}

// BuildOverview renders the overview screen from a snapshot and the
// current view state. All numbers come pre-aggregated from the stats
// package; this layer only formats them.
func BuildOverview(teacher models.Teacher, students []models.Student, state State) OverviewView {
	overview := stats.Overview(students)
	visible := state.VisibleStudents(students)

	cards := make([]StudentCardView, 0, len(visible))
	for _, student := range visible {
		cards = append(cards, BuildStudentCard(student))
	}

	return OverviewView{
		Teacher:         teacher,
		TotalStudents:   overview.Students,
		TotalBooks:      overview.TotalBooks,
		TotalCompleted:  overview.TotalCompleted,
		AverageProgress: overview.AverageProgress,
		Summary:         stats.Summarize(students).Sentence(),
		ViewMode:        state.ViewMode,
		Search:          state.Search,
		Students:        cards,
	}
}

// BuildStudentCard renders one overview card from pre-aggregated values.
func BuildStudentCard(student models.Student) StudentCardView {
	card := StudentCardView{
		ID:              student.ID,
		Name:            student.Name,
		Initials:        Initials(student.Name),
		Avatar:          student.Avatar,
		BooksAssigned:   len(student.Books),
		BooksCompleted:  student.TotalBooksCompleted,
		ActiveBooks:     stats.ActiveBooks(student.Books),
		AverageProgress: student.AverageProgress,
	}

	if current, ok := stats.CurrentlyReading(student.Books); ok {
		card.CurrentRead = &CurrentReadView{
			BookID:   current.ID,
			Title:    current.Book.Title,
			Progress: current.Progress,
			LastRead: FormatDate(current.LastReadDate),
		}
	}

	return card
}

// BuildStudentDetail renders the student detail screen.
func BuildStudentDetail(student models.Student) StudentDetailView {
	detail := StudentDetailView{
		ID:              student.ID,
		Name:            student.Name,
		Initials:        Initials(student.Name),
		BooksCompleted:  student.TotalBooksCompleted,
		BooksAssigned:   len(student.Books),
		AverageProgress: student.AverageProgress,
		ActiveBooks:     stats.ActiveBooks(student.Books),
		Books:           make([]BookRowView, 0, len(student.Books)),
	}

	for _, book := range student.Books {
		detail.Books = append(detail.Books, BookRowView{
			ID:           book.ID,
			Title:        book.Book.Title,
			Author:       book.Book.Author,
			Cover:        book.Book.Cover,
			Status:       StatusFor(book.Status),
			Progress:     book.Progress,
			AssignedDate: FormatDate(book.AssignedDate),
			LastReadDate: FormatDate(book.LastReadDate),
		})
	}

	return detail
}

// BuildBookDetail renders the book detail screen with session totals.
func BuildBookDetail(studentName string, book models.StudentBook) BookDetailView {
	totals := stats.Sessions(book)

	detail := BookDetailView{
		ID:             book.ID,
		StudentName:    studentName,
		Title:          book.Book.Title,
		Author:         book.Book.Author,
		Cover:          book.Book.Cover,
		TotalPages:     book.Book.TotalPages,
		Status:         StatusFor(book.Status),
		Progress:       book.Progress,
		TotalTime:      FormatHours(totals.TotalMinutes),
		TotalPagesRead: totals.TotalPages,
		SessionCount:   totals.Count,
		AvgMinutes:     totals.AvgMinutes,
		Sessions:       make([]SessionView, 0, len(book.Sessions)),
	}

	for _, session := range book.Sessions {
		detail.Sessions = append(detail.Sessions, SessionView{
			ID:        session.ID,
			Date:      FormatDate(session.Date),
			PagesRead: session.PagesRead,
			TimeSpent: session.TimeSpent,
			Notes:     session.Notes,
		})
	}

	return detail
}
