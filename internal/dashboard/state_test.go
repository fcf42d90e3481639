package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"readboard/internal/models"
)

func TestNewState(t *testing.T) {
	state := NewState()
	assert.Equal(t, ScreenOverview, state.Screen)
	assert.Equal(t, ViewModeGrid, state.ViewMode)
	assert.Empty(t, state.SelectedStudentID)
	assert.Empty(t, state.SelectedBookID)
	assert.Empty(t, state.Search)
}

func TestNavigationFlow(t *testing.T) {
	// overview -> student -> book -> back lands on the student detail
	// with the student still selected and the book cleared
	state := NewState().SelectStudent("emma").SelectBook("book-x").Back()

	assert.Equal(t, ScreenStudentDetail, state.Screen)
	assert.Equal(t, "emma", state.SelectedStudentID)
	assert.Empty(t, state.SelectedBookID)

	state = state.Back()
	assert.Equal(t, ScreenOverview, state.Screen)
	assert.Empty(t, state.SelectedStudentID)
}

func TestBackOnOverviewIsNoOp(t *testing.T) {
	state := NewState().Back()
	assert.Equal(t, NewState(), state)
}

func TestSelectBookRequiresStudent(t *testing.T) {
	// Selecting a book straight from the overview changes nothing
	state := NewState().SelectBook("book-x")
	assert.Equal(t, ScreenOverview, state.Screen)
	assert.Empty(t, state.SelectedBookID)
}

func TestSelectStudentOutsideOverviewIsNoOp(t *testing.T) {
	state := NewState().SelectStudent("emma")
	again := state.SelectStudent("john")
	assert.Equal(t, state, again)
}

func TestViewModeDoesNotTouchNavigation(t *testing.T) {
	state := NewState().SelectStudent("emma").WithViewMode(ViewModeList)
	assert.Equal(t, ScreenStudentDetail, state.Screen)
	assert.Equal(t, "emma", state.SelectedStudentID)
	assert.Equal(t, ViewModeList, state.ViewMode)
}

func TestParseViewMode(t *testing.T) {
	mode, err := ParseViewMode("grid")
	assert.NoError(t, err)
	assert.Equal(t, ViewModeGrid, mode)

	mode, err = ParseViewMode("list")
	assert.NoError(t, err)
	assert.Equal(t, ViewModeList, mode)

	_, err = ParseViewMode("carousel")
	assert.Error(t, err)
}

func TestSearchOnlyAppliesOnOverview(t *testing.T) {
	state := NewState().WithSearch("emma")
	assert.Equal(t, "emma", state.Search)

	detail := NewState().SelectStudent("emma").WithSearch("john")
	assert.Empty(t, detail.Search)
}

func TestVisibleStudents(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "Emma Watson"},
		{ID: "2", Name: "John Smith"},
	}

	testCases := []struct {
		name     string
		search   string
		expected []string
	}{
		{
			name:     "empty search shows everyone",
			search:   "",
			expected: []string{"Emma Watson", "John Smith"},
		},
		{
			name:     "lowercase matches",
			search:   "emma",
			expected: []string{"Emma Watson"},
		},
		{
			name:     "uppercase matches",
			search:   "EMMA",
			expected: []string{"Emma Watson"},
		},
		{
			name:     "substring in surname",
			search:   "smith",
			expected: []string{"John Smith"},
		},
		{
			name:     "no match shows nobody",
			search:   "sophie",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state := NewState().WithSearch(tc.search)
			visible := state.VisibleStudents(students)

			var names []string
			for _, student := range visible {
				names = append(names, student.Name)
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}
