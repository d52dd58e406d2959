package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusArchived:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type RecurringPattern string

const (
	RecurringDaily    RecurringPattern = "daily"
	RecurringWeekly   RecurringPattern = "weekly"
	RecurringBiweekly RecurringPattern = "biweekly"
	RecurringMonthly  RecurringPattern = "monthly"
	RecurringYearly   RecurringPattern = "yearly"
	RecurringCustom   RecurringPattern = "custom"
)

func (p RecurringPattern) Valid() bool {
	switch p {
	case RecurringDaily, RecurringWeekly, RecurringBiweekly, RecurringMonthly, RecurringYearly, RecurringCustom:
		return true
	}
	return false
}

// MaxTagsPerTask is enforced at creation time only; existing tasks keep
// whatever they were created with.
const MaxTagsPerTask = 5

type Task struct {
	ID                string
	UserID            string
	Title             string
	Description       string
	Status            TaskStatus
	Priority          TaskPriority
	Category          string
	Tags              []string
	DueDate           time.Time
	CompletedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	IsRecurring       bool
	RecurringPattern  RecurringPattern
	RecurringInterval int
	RecurringEndDate  *time.Time
}

// IsOverdue reports whether the task's due date has passed relative to now.
// A completed task is never overdue, and neither is a task without a due
// date (zero value).
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(now)
}

// HasTag reports case-insensitive tag membership.
func (t Task) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if strings.EqualFold(candidate, tag) {
			return true
		}
	}
	return false
}

type CreateTaskInput struct {
	Title             string
	Description       string
	Status            TaskStatus
	Priority          TaskPriority
	Category          string
	Tags              []string
	DueDate           time.Time
	IsRecurring       bool
	RecurringPattern  RecurringPattern
	RecurringInterval int
	RecurringEndDate  *time.Time
}

// UpdateTaskInput carries a partial patch. Pointer fields distinguish
// "absent" from "set to zero"; the *Set flags cover fields where JSON null
// means "clear".
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	Status            *TaskStatus
	Priority          *TaskPriority
	Category          *string
	CategorySet       bool
	Tags              []string
	TagsSet           bool
	DueDate           *time.Time
	IsRecurring       *bool
	RecurringPattern  *RecurringPattern
	RecurringInterval *int
	RecurringEndDate  *time.Time
	RecurringEndSet   bool
}

type Subtask struct {
	ID        string
	TaskID    string
	Title     string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
