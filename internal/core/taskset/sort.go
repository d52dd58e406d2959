package taskset

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskboard/internal/core/domain"
)

type SortKey string

const (
	SortByDueDate  SortKey = "due_date"
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
	SortByCategory SortKey = "category"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// priorityRank fixes the priority ordering: ascending means high first.
// Callers depend on this exact table; it is not alphabetical.
var priorityRank = map[domain.TaskPriority]int{
	domain.TaskPriorityHigh:   0,
	domain.TaskPriorityMedium: 1,
	domain.TaskPriorityLow:    2,
}

var titleCollator = collate.New(language.English, collate.IgnoreCase)

// SortBy returns a new slice ordered by the given key and direction. The
// sort is stable: tasks comparing equal keep their relative input order.
// Unknown keys return an unreordered copy.
func SortBy(tasks []domain.Task, key SortKey, direction SortDirection) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)

	var less func(a, b domain.Task) int
	switch key {
	case SortByDueDate:
		less = func(a, b domain.Task) int {
			return a.DueDate.Compare(b.DueDate)
		}
	case SortByPriority:
		less = func(a, b domain.Task) int {
			return priorityRank[a.Priority] - priorityRank[b.Priority]
		}
	case SortByTitle:
		less = func(a, b domain.Task) int {
			return titleCollator.CompareString(a.Title, b.Title)
		}
	case SortByCategory:
		less = func(a, b domain.Task) int {
			return titleCollator.CompareString(a.Category, b.Category)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := less(out[i], out[j])
		if direction == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}
