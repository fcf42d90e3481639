package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"readboard/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return parsed
}

func TestTotalBooksCompleted(t *testing.T) {
	testCases := []struct {
		name     string
		books    []models.StudentBook
		expected int
	}{
		{
			name:     "no books",
			books:    nil,
			expected: 0,
		},
		{
			name: "counts only completed",
			books: []models.StudentBook{
				{Status: models.StatusCompleted},
				{Status: models.StatusReading},
				{Status: models.StatusCompleted},
				{Status: models.StatusPaused},
				{Status: models.StatusYetToStart},
			},
			expected: 2,
		},
		{
			name: "none completed",
			books: []models.StudentBook{
				{Status: models.StatusReading},
				{Status: models.StatusPaused},
			},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TotalBooksCompleted(tc.books))
		})
	}
}

func TestAverageProgress(t *testing.T) {
	testCases := []struct {
		name     string
		books    []models.StudentBook
		expected int
	}{
		{
			name:     "no books is zero",
			books:    nil,
			expected: 0,
		},
		{
			name: "emma watson scenario",
			books: []models.StudentBook{
				{Status: models.StatusReading, Progress: 65},
				{Status: models.StatusCompleted, Progress: 100},
			},
			expected: 83, // round((65+100)/2)
		},
		{
			name: "rounds half up",
			books: []models.StudentBook{
				{Progress: 50},
				{Progress: 51},
			},
			expected: 51, // 50.5 rounds up
		},
		{
			name: "single book",
			books: []models.StudentBook{
				{Progress: 30},
			},
			expected: 30,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AverageProgress(tc.books))
		})
	}
}

func TestAverageProgressOrderInvariant(t *testing.T) {
	books := []models.StudentBook{
		{Progress: 10}, {Progress: 65}, {Progress: 100}, {Progress: 33},
	}
	reversed := []models.StudentBook{
		{Progress: 33}, {Progress: 100}, {Progress: 65}, {Progress: 10},
	}

	assert.Equal(t, AverageProgress(books), AverageProgress(reversed))
}

func TestCurrentlyReading(t *testing.T) {
	june10 := models.StudentBook{
		ID: "older", Status: models.StatusReading,
	}
	june14 := models.StudentBook{
		ID: "newer", Status: models.StatusReading,
	}

	t.Run("no reading book", func(t *testing.T) {
		books := []models.StudentBook{
			{Status: models.StatusCompleted},
			{Status: models.StatusPaused},
		}
		_, found := CurrentlyReading(books)
		assert.False(t, found)
	})

	t.Run("latest last-read date wins", func(t *testing.T) {
		older := june10
		older.LastReadDate = day(t, "2024-06-10")
		newer := june14
		newer.LastReadDate = day(t, "2024-06-14")

		current, found := CurrentlyReading([]models.StudentBook{older, newer})
		assert.True(t, found)
		assert.Equal(t, "newer", current.ID)

		// Same result regardless of slice order
		current, found = CurrentlyReading([]models.StudentBook{newer, older})
		assert.True(t, found)
		assert.Equal(t, "newer", current.ID)
	})

	t.Run("missing date sorts earliest", func(t *testing.T) {
		never := models.StudentBook{ID: "never", Status: models.StatusReading}
		read := models.StudentBook{ID: "read", Status: models.StatusReading, LastReadDate: day(t, "2024-06-01")}

		current, found := CurrentlyReading([]models.StudentBook{never, read})
		assert.True(t, found)
		assert.Equal(t, "read", current.ID)
	})

	t.Run("equal dates keep first encountered", func(t *testing.T) {
		first := models.StudentBook{ID: "first", Status: models.StatusReading, LastReadDate: day(t, "2024-06-14")}
		second := models.StudentBook{ID: "second", Status: models.StatusReading, LastReadDate: day(t, "2024-06-14")}

		current, found := CurrentlyReading([]models.StudentBook{first, second})
		assert.True(t, found)
		assert.Equal(t, "first", current.ID)
	})
}

func TestSessions(t *testing.T) {
	book := models.StudentBook{
		Sessions: []models.ReadingSession{
			{PagesRead: 25, TimeSpent: 45},
			{PagesRead: 30, TimeSpent: 60},
		},
	}

	totals := Sessions(book)
	assert.Equal(t, 55, totals.TotalPages)
	assert.Equal(t, 105, totals.TotalMinutes)
	assert.Equal(t, 2, totals.Count)
	assert.Equal(t, 52.5, totals.AvgMinutes)
}

func TestSessionsEmpty(t *testing.T) {
	totals := Sessions(models.StudentBook{})
	assert.Equal(t, 0, totals.TotalPages)
	assert.Equal(t, 0, totals.TotalMinutes)
	assert.Equal(t, 0, totals.Count)
	assert.Equal(t, 0.0, totals.AvgMinutes)
}

func TestOverview(t *testing.T) {
	students := []models.Student{
		{
			Books: []models.StudentBook{
				{Status: models.StatusReading, Progress: 65},
				{Status: models.StatusCompleted, Progress: 100},
			},
			TotalBooksCompleted: 1,
			AverageProgress:     83,
		},
		{
			Books: []models.StudentBook{
				{Status: models.StatusCompleted, Progress: 100},
			},
			TotalBooksCompleted: 1,
			AverageProgress:     100,
		},
	}

	overview := Overview(students)
	assert.Equal(t, 2, overview.Students)
	assert.Equal(t, 3, overview.TotalBooks)
	assert.Equal(t, 2, overview.TotalCompleted)
	assert.Equal(t, 92, overview.AverageProgress) // round((83+100)/2)
	assert.Equal(t, 1, overview.ActiveReaders)
}

func TestOverviewEmpty(t *testing.T) {
	overview := Overview(nil)
	assert.Equal(t, 0, overview.Students)
	assert.Equal(t, 0, overview.AverageProgress)
}

// classOf builds a synthetic class for tier tests: completedPerStudent
// completed books per student, and the first activeReaders students get one
// reading book each.
func classOf(size, completedPerStudent, activeReaders int) []models.Student {
	students := make([]models.Student, size)
	for i := range students {
		var books []models.StudentBook
		for range completedPerStudent {
			books = append(books, models.StudentBook{Status: models.StatusCompleted, Progress: 100})
		}
		if i < activeReaders {
			books = append(books, models.StudentBook{Status: models.StatusReading, Progress: 50})
		}
		students[i] = models.Student{
			Books:               books,
			TotalBooksCompleted: TotalBooksCompleted(books),
			AverageProgress:     AverageProgress(books),
		}
	}
	return students
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name     string
		students []models.Student
		expected SummaryTier
	}{
		{
			name:     "empty class is starting",
			students: nil,
			expected: TierStarting,
		},
		{
			// 10 students, 25 completed of 30 target (83%), 8 active (80%)
			name:     "high completion and activity excels",
			students: append(classOf(5, 3, 5), classOf(5, 2, 3)...),
			expected: TierExcelling,
		},
		{
			// 10 students, 20 of 30 target (67%), 5 active (50%)
			name:     "solid progress tier",
			students: append(classOf(5, 2, 5), classOf(5, 2, 0)...),
			expected: TierSolidProgress,
		},
		{
			// 10 students, 0 completed, 7 active (70%)
			name:     "active but few completions is engagement",
			students: classOf(10, 0, 7),
			expected: TierEngagement,
		},
		{
			// 20 students, 20 completed (33% of target), 0 active
			name:     "many completions with low activity is foundation",
			students: classOf(20, 1, 0),
			expected: TierFoundation,
		},
		{
			name:     "small quiet class is starting",
			students: classOf(3, 1, 1),
			expected: TierStarting,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Summarize(tc.students))
		})
	}
}

func TestSummaryTierSentences(t *testing.T) {
	tiers := []SummaryTier{TierStarting, TierFoundation, TierEngagement, TierSolidProgress, TierExcelling}

	seen := make(map[string]bool)
	for _, tier := range tiers {
		sentence := tier.Sentence()
		assert.NotEmpty(t, sentence)
		assert.False(t, seen[sentence], "tier sentences must be distinct")
		seen[sentence] = true
	}
}
