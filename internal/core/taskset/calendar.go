package taskset

import (
	"time"

	"taskboard/internal/core/domain"
)

// CalendarCell is one slot of a month grid. Day 0 marks a leading blank
// cell before the 1st of the month.
type CalendarCell struct {
	Day int `json:"day"`
}

func (c CalendarCell) Blank() bool { return c.Day == 0 }

// BuildCalendarGrid returns a flat month grid: one blank cell per weekday
// slot before the 1st (Sunday = 0), then one cell per day of the month in
// order. All date math is on the UTC calendar.
func BuildCalendarGrid(year int, month time.Month) []CalendarCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	leading := int(first.Weekday())
	cells := make([]CalendarCell, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, CalendarCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, CalendarCell{Day: day})
	}
	return cells
}

// TasksOnDay returns the tasks whose due date falls on the exact UTC
// calendar day, preserving input order.
func TasksOnDay(tasks []domain.Task, year int, month time.Month, day int) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.DueDate.IsZero() {
			continue
		}
		due := t.DueDate.UTC()
		if due.Year() == year && due.Month() == month && due.Day() == day {
			out = append(out, t)
		}
	}
	return out
}
