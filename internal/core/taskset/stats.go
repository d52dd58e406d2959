package taskset

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"taskboard/internal/core/domain"
)

// UpcomingBuckets counts tasks with a future-or-today due date at day
// granularity. Completed and past-due tasks are excluded.
type UpcomingBuckets struct {
	Today    int `json:"today"`
	Tomorrow int `json:"tomorrow"`
	ThisWeek int `json:"this_week"`
	Later    int `json:"later"`
}

type Stats struct {
	Total          int             `json:"total"`
	Completed      int             `json:"completed"`
	InProgress     int             `json:"in_progress"`
	Pending        int             `json:"pending"`
	Overdue        int             `json:"overdue"`
	CompletionRate int             `json:"completion_rate"`
	Breakdown      map[string]int  `json:"breakdown"`
	Upcoming       UpcomingBuckets `json:"upcoming"`
}

var titleCaser = cases.Title(language.English)

// ComputeStats derives aggregate statistics from a task list at the given
// reference time. contextTag names a tag already used to select the list
// (e.g. "work"); it is left out of the breakdown so it does not swamp it.
// The completion rate is a rounded percentage, zero for an empty list.
func ComputeStats(tasks []domain.Task, now time.Time, contextTag string) Stats {
	stats := Stats{Breakdown: map[string]int{}}
	stats.Total = len(tasks)

	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusCompleted:
			stats.Completed++
		case domain.TaskStatusInProgress:
			stats.InProgress++
		case domain.TaskStatusPending:
			stats.Pending++
		}

		if t.IsOverdue(now) {
			stats.Overdue++
		}

		if t.Category != "" {
			stats.Breakdown[titleCaser.String(strings.ToLower(t.Category))]++
		}
		for _, tag := range t.Tags {
			if contextTag != "" && strings.EqualFold(tag, contextTag) {
				continue
			}
			stats.Breakdown[titleCaser.String(strings.ToLower(tag))]++
		}

		if t.Status != domain.TaskStatusCompleted {
			switch days, ok := dayDiff(t.DueDate, now); {
			case !ok || days < 0:
			case days == 0:
				stats.Upcoming.Today++
			case days == 1:
				stats.Upcoming.Tomorrow++
			case days <= 7:
				stats.Upcoming.ThisWeek++
			default:
				stats.Upcoming.Later++
			}
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// dayDiff returns the whole-day distance from now to due on the UTC
// calendar, false when due is unset.
func dayDiff(due, now time.Time) (int, bool) {
	if due.IsZero() {
		return 0, false
	}
	dueDay := truncateToDay(due)
	nowDay := truncateToDay(now)
	return int(dueDay.Sub(nowDay).Hours() / 24), true
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
