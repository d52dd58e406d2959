package ports

import (
	"context"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/taskset"
)

// ListQuery is the repository-level pushdown subset of the filter
// criteria. Finer criteria (tags, date windows, ownership splits) are
// applied in memory by the taskset engine.
type ListQuery struct {
	UserID   string
	Status   domain.TaskStatus
	Priority domain.TaskPriority
	Search   string
	Limit    int
}

type TaskRepository interface {
	List(ctx context.Context, q ListQuery) ([]domain.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (domain.Task, error)
	Insert(ctx context.Context, task domain.Task) error
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, userID, taskID string) error

	ListRecurringDue(ctx context.Context, before time.Time) ([]domain.Task, error)

	ListSubtasks(ctx context.Context, taskID string) ([]domain.Subtask, error)
	InsertSubtask(ctx context.Context, subtask domain.Subtask) error
}

// StatsCache holds computed per-user statistics for a short period.
// Implementations must tolerate a cold or unavailable backend by
// returning found=false rather than an error the caller has to branch on.
type StatsCache interface {
	Get(ctx context.Context, userID, contextTag string) (taskset.Stats, bool)
	Set(ctx context.Context, userID, contextTag string, stats taskset.Stats)
	Invalidate(ctx context.Context, userID string)
}

type TaskService interface {
	ListTasks(ctx context.Context, userID string, criteria taskset.Criteria, key taskset.SortKey, direction taskset.SortDirection, limit int) ([]domain.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (domain.Task, error)
	CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error

	Stats(ctx context.Context, userID, contextTag string, now time.Time) (taskset.Stats, error)
	CalendarMonth(ctx context.Context, userID string, year int, month time.Month) (CalendarMonth, error)

	BulkUpdate(ctx context.Context, userID string, taskIDs []string, input domain.UpdateTaskInput) BulkResult
	BulkDelete(ctx context.Context, userID string, taskIDs []string) BulkResult

	ListSubtasks(ctx context.Context, userID, taskID string) ([]domain.Subtask, error)
	CreateSubtask(ctx context.Context, userID, taskID, title string) (domain.Subtask, error)
}

// BulkFailure identifies one task a bulk operation could not apply to.
type BulkFailure struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// BulkResult reports a settled bulk operation: every requested ID is
// accounted for either in Succeeded or in Failed.
type BulkResult struct {
	Requested int           `json:"requested"`
	Succeeded int           `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// CalendarDay pairs a grid cell with the tasks due that day.
type CalendarDay struct {
	Cell  taskset.CalendarCell `json:"cell"`
	Tasks []domain.Task        `json:"tasks,omitempty"`
}

type CalendarMonth struct {
	Year  int           `json:"year"`
	Month time.Month    `json:"month"`
	Days  []CalendarDay `json:"days"`
}
