package dashboard

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"readboard/internal/models"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		status models.Status
		label  string
		color  string
	}{
		{models.StatusCompleted, "completed", "green"},
		{models.StatusReading, "reading", "blue"},
		{models.StatusPaused, "paused", "yellow"},
		{models.StatusYetToStart, "yet to start", "gray"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			display := StatusFor(tc.status)
			assert.Equal(t, tc.label, display.Label)
			assert.Equal(t, tc.color, display.Color)
		})
	}

	t.Run("unknown falls back to yet-to-start", func(t *testing.T) {
		assert.Equal(t, "gray", StatusFor(models.Status("bogus")).Color)
	})
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "EW", Initials("Emma Watson"))
	assert.Equal(t, "J", Initials("John"))
	assert.Equal(t, "SC", Initials("  Sophie   Chen "))
	assert.Equal(t, "", Initials(""))

	// Multi-byte first letters must stay whole runes
	assert.Equal(t, "ÉZ", Initials("Émile Zola"))
	assert.Equal(t, "ØN", Initials("Øyvind Nilsen"))
	assert.True(t, utf8.ValidString(Initials("Émile Zola")))
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jun 14, 2024", FormatDate(date))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2h", FormatHours(105)) // 1.75h rounds to 2
	assert.Equal(t, "1h", FormatHours(60))
	assert.Equal(t, "0h", FormatHours(0))
}

func demoStudent() models.Student {
	june := func(d int) time.Time {
		return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
	}
	books := []models.StudentBook{
		{
			ID:           "sb-1",
			Book:         models.Book{ID: "b-1", Title: "To Kill a Mockingbird", Author: "Harper Lee"},
			Status:       models.StatusReading,
			Progress:     65,
			LastReadDate: june(14),
			AssignedDate: june(1),
			Sessions: []models.ReadingSession{
				{ID: "se-1", Date: june(14), PagesRead: 25, TimeSpent: 45, Notes: "Great progress today!"},
				{ID: "se-2", Date: june(12), PagesRead: 30, TimeSpent: 60},
			},
		},
		{
			ID:           "sb-2",
			Book:         models.Book{ID: "b-2", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald"},
			Status:       models.StatusCompleted,
			Progress:     100,
			LastReadDate: june(10),
			AssignedDate: june(1),
		},
	}
	return models.Student{
		ID:                  "st-1",
		Name:                "Emma Watson",
		Books:               books,
		TotalBooksCompleted: 1,
		AverageProgress:     83,
	}
}

func TestBuildStudentCard(t *testing.T) {
	card := BuildStudentCard(demoStudent())

	assert.Equal(t, "Emma Watson", card.Name)
	assert.Equal(t, "EW", card.Initials)
	assert.Equal(t, 2, card.BooksAssigned)
	assert.Equal(t, 1, card.BooksCompleted)
	assert.Equal(t, 1, card.ActiveBooks)
	assert.Equal(t, 83, card.AverageProgress)
	if assert.NotNil(t, card.CurrentRead) {
		assert.Equal(t, "To Kill a Mockingbird", card.CurrentRead.Title)
		assert.Equal(t, 65, card.CurrentRead.Progress)
		assert.Equal(t, "Jun 14, 2024", card.CurrentRead.LastRead)
	}
}

func TestBuildStudentCardNoActiveBook(t *testing.T) {
	student := models.Student{
		Name: "Sophie Chen",
		Books: []models.StudentBook{
			{Status: models.StatusCompleted, Progress: 100},
		},
	}

	card := BuildStudentCard(student)
	assert.Nil(t, card.CurrentRead)
}

func TestBuildOverviewAppliesSearch(t *testing.T) {
	students := []models.Student{
		demoStudent(),
		{ID: "st-2", Name: "John Smith"},
	}
	teacher := models.Teacher{ID: "t-1", Name: "Sarah Johnson"}

	state := NewState().WithSearch("emma")
	overview := BuildOverview(teacher, students, state)

	// Totals cover the whole class, the cards only the filtered slice
	assert.Equal(t, 2, overview.TotalStudents)
	assert.Len(t, overview.Students, 1)
	assert.Equal(t, "Emma Watson", overview.Students[0].Name)
	assert.NotEmpty(t, overview.Summary)
}

func TestBuildStudentDetail(t *testing.T) {
	detail := BuildStudentDetail(demoStudent())

	assert.Equal(t, "Emma Watson", detail.Name)
	assert.Equal(t, 2, detail.BooksAssigned)
	assert.Len(t, detail.Books, 2)
	assert.Equal(t, "blue", detail.Books[0].Status.Color)
	assert.Equal(t, "Jun 1, 2024", detail.Books[0].AssignedDate)
	assert.Equal(t, "Jun 14, 2024", detail.Books[0].LastReadDate)
}

func TestBuildBookDetail(t *testing.T) {
	student := demoStudent()
	detail := BuildBookDetail(student.Name, student.Books[0])

	assert.Equal(t, "Emma Watson", detail.StudentName)
	assert.Equal(t, "To Kill a Mockingbird", detail.Title)
	assert.Equal(t, "2h", detail.TotalTime) // 105 minutes
	assert.Equal(t, 55, detail.TotalPagesRead)
	assert.Equal(t, 2, detail.SessionCount)
	assert.Equal(t, 52.5, detail.AvgMinutes)
	assert.Len(t, detail.Sessions, 2)
	assert.Equal(t, "Great progress today!", detail.Sessions[0].Notes)
}
