package taskset_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/taskset"
)

func TestBuildCalendarGrid_March2026(t *testing.T) {
	// March 1, 2026 is a Sunday: no leading blanks, 31 days.
	cells := taskset.BuildCalendarGrid(2026, time.March)
	require.Len(t, cells, 31)
	require.False(t, cells[0].Blank())
	require.Equal(t, 1, cells[0].Day)
	require.Equal(t, 31, cells[30].Day)
}

func TestBuildCalendarGrid_LeadingBlanks(t *testing.T) {
	// July 1, 2026 is a Wednesday: three leading blanks.
	cells := taskset.BuildCalendarGrid(2026, time.July)
	require.Len(t, cells, 3+31)
	for i := 0; i < 3; i++ {
		require.True(t, cells[i].Blank())
	}
	require.Equal(t, 1, cells[3].Day)
}

func TestBuildCalendarGrid_Completeness(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for month := time.January; month <= time.December; month++ {
			cells := taskset.BuildCalendarGrid(year, month)

			first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
			require.Len(t, cells, int(first.Weekday())+daysInMonth)

			want := 1
			for _, cell := range cells {
				if cell.Blank() {
					continue
				}
				require.Equal(t, want, cell.Day, "%d-%s", year, month)
				want++
			}
			require.Equal(t, daysInMonth+1, want)
		}
	}
}

func TestBuildCalendarGrid_LeapFebruary(t *testing.T) {
	var days []int
	for _, cell := range taskset.BuildCalendarGrid(2028, time.February) {
		if !cell.Blank() {
			days = append(days, cell.Day)
		}
	}
	require.Len(t, days, 29)
}

func TestTasksOnDay_ExactCalendarDayMatch(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", DueDate: time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)},
		{ID: "b", DueDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)},
		{ID: "c", DueDate: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)},
		{ID: "d"},
	}

	got := taskset.TasksOnDay(tasks, 2026, time.March, 10)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "c", got[1].ID)
}
