// Package taskset is the pure task-collection engine: filtering, sorting,
// aggregate statistics and calendar bucketing over an in-memory task list.
// Nothing in this package reads the wall clock or performs I/O; every
// time-relative computation takes an explicit reference time.
package taskset

import (
	"strings"
	"time"

	"taskboard/internal/core/domain"
)

type Ownership string

const (
	OwnershipAny  Ownership = ""
	OwnershipMine Ownership = "mine"
	OwnershipTeam Ownership = "team"
)

// DateWindow is an inclusive due-date range. A zero From or To leaves that
// side unbounded.
type DateWindow struct {
	From time.Time
	To   time.Time
}

func (w DateWindow) isZero() bool {
	return w.From.IsZero() && w.To.IsZero()
}

func (w DateWindow) contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// Criteria describes one filter pass. Zero-value fields (and the literal
// "all") impose no constraint; supplied fields combine with logical AND.
type Criteria struct {
	// SearchText matches case-insensitively as a substring of title or
	// description. Empty means no constraint.
	SearchText string

	// Status accepts canonical values ("in_progress") as well as the
	// hyphenated UI form ("in-progress").
	Status string

	Priority string
	Category string
	Tag      string

	// Ownership splits by owner: mine keeps tasks whose UserID equals
	// CurrentUserID, team keeps the rest.
	Ownership     Ownership
	CurrentUserID string

	Due DateWindow

	// OverdueOnly keeps tasks due before Now that are not completed.
	OverdueOnly bool
	Now         time.Time
}

// NormalizeStatus maps UI status spellings to the canonical enum form.
// Empty strings and "all" normalize to "" (no constraint).
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return ""
	}
	return strings.ReplaceAll(s, "-", "_")
}

// Filter returns the tasks satisfying every supplied criterion, in their
// original relative order. The input slice is never modified.
func Filter(tasks []domain.Task, c Criteria) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, c) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether a single task passes the criteria.
func Matches(t domain.Task, c Criteria) bool {
	if search := strings.TrimSpace(c.SearchText); search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}

	if status := NormalizeStatus(c.Status); status != "" {
		if string(t.Status) != status {
			return false
		}
	}

	if c.Priority != "" && c.Priority != "all" {
		if !strings.EqualFold(string(t.Priority), c.Priority) {
			return false
		}
	}

	if c.Category != "" && c.Category != "all" {
		if !strings.EqualFold(t.Category, c.Category) {
			return false
		}
	}

	if c.Tag != "" && c.Tag != "all" {
		if !t.HasTag(c.Tag) {
			return false
		}
	}

	switch c.Ownership {
	case OwnershipMine:
		if t.UserID != c.CurrentUserID {
			return false
		}
	case OwnershipTeam:
		if t.UserID == c.CurrentUserID {
			return false
		}
	}

	if !c.Due.isZero() && !c.Due.contains(t.DueDate) {
		return false
	}

	if c.OverdueOnly && !t.IsOverdue(c.Now) {
		return false
	}

	return true
}
