package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/core/taskset"
)

type TaskService struct {
	repo  ports.TaskRepository
	cache ports.StatsCache // nil disables caching
	now   func() time.Time
}

var _ ports.TaskService = (*TaskService)(nil)

type Option func(*TaskService)

// WithStatsCache attaches a stats cache; without it every Stats call
// recomputes from the repository.
func WithStatsCache(cache ports.StatsCache) Option {
	return func(s *TaskService) { s.cache = cache }
}

// WithClock overrides the reference clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) { s.now = now }
}

func NewTaskService(repo ports.TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) ListTasks(ctx context.Context, userID string, criteria taskset.Criteria, key taskset.SortKey, direction taskset.SortDirection, limit int) ([]domain.Task, error) {
	q := ports.ListQuery{UserID: userID, Search: criteria.SearchText}
	if status := taskset.NormalizeStatus(criteria.Status); status != "" {
		q.Status = domain.TaskStatus(status)
	}
	if p := strings.ToLower(criteria.Priority); p != "" && p != "all" {
		q.Priority = domain.TaskPriority(p)
	}

	tasks, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	if criteria.Now.IsZero() {
		criteria.Now = s.now().UTC()
	}
	criteria.CurrentUserID = userID
	tasks = taskset.Filter(tasks, criteria)
	if key != "" {
		tasks = taskset.SortBy(tasks, key, direction)
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	return s.repo.GetByID(ctx, userID, taskID)
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	if !input.Status.Valid() {
		return domain.Task{}, domain.ErrInvalidStatus
	}
	if !input.Priority.Valid() {
		return domain.Task{}, domain.ErrInvalidPriority
	}
	if len(input.Tags) > domain.MaxTagsPerTask {
		return domain.Task{}, domain.ErrTooManyTags
	}
	if input.IsRecurring {
		if !input.RecurringPattern.Valid() {
			return domain.Task{}, domain.ErrInvalidRecurrence
		}
		if input.RecurringPattern == domain.RecurringCustom && input.RecurringInterval < 1 {
			return domain.Task{}, domain.ErrInvalidRecurrence
		}
	}

	now := s.now().UTC()
	task := domain.Task{
		ID:                uuid.NewString(),
		UserID:            userID,
		Title:             input.Title,
		Description:       input.Description,
		Status:            input.Status,
		Priority:          input.Priority,
		Category:          input.Category,
		Tags:              normalizeTags(input.Tags),
		DueDate:           input.DueDate.UTC(),
		CreatedAt:         now,
		UpdatedAt:         now,
		IsRecurring:       input.IsRecurring,
		RecurringPattern:  input.RecurringPattern,
		RecurringInterval: input.RecurringInterval,
		RecurringEndDate:  input.RecurringEndDate,
	}
	if task.Status == domain.TaskStatusCompleted {
		task.CompletedAt = &now
	}

	if err := s.repo.Insert(ctx, task); err != nil {
		return domain.Task{}, err
	}
	s.invalidateStats(ctx, userID)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	now := s.now().UTC()
	if err := applyPatch(&task, input, now); err != nil {
		return domain.Task{}, err
	}
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	s.invalidateStats(ctx, userID)
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	s.invalidateStats(ctx, userID)
	return nil
}

func (s *TaskService) Stats(ctx context.Context, userID, contextTag string, now time.Time) (taskset.Stats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx, userID, contextTag); ok {
			return stats, nil
		}
	}

	tasks, err := s.repo.List(ctx, ports.ListQuery{UserID: userID})
	if err != nil {
		return taskset.Stats{}, err
	}

	if now.IsZero() {
		now = s.now().UTC()
	}
	stats := taskset.ComputeStats(tasks, now, contextTag)
	if s.cache != nil {
		s.cache.Set(ctx, userID, contextTag, stats)
	}
	return stats, nil
}

func (s *TaskService) CalendarMonth(ctx context.Context, userID string, year int, month time.Month) (ports.CalendarMonth, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	tasks, err := s.repo.List(ctx, ports.ListQuery{UserID: userID})
	if err != nil {
		return ports.CalendarMonth{}, err
	}
	tasks = taskset.Filter(tasks, taskset.Criteria{Due: taskset.DateWindow{From: from, To: to}})

	out := ports.CalendarMonth{Year: year, Month: month}
	for _, cell := range taskset.BuildCalendarGrid(year, month) {
		day := ports.CalendarDay{Cell: cell}
		if !cell.Blank() {
			day.Tasks = taskset.TasksOnDay(tasks, year, month, cell.Day)
		}
		out.Days = append(out.Days, day)
	}
	return out, nil
}

func (s *TaskService) ListSubtasks(ctx context.Context, userID, taskID string) ([]domain.Subtask, error) {
	// Ownership check before touching the sub-resource.
	if _, err := s.repo.GetByID(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.repo.ListSubtasks(ctx, taskID)
}

func (s *TaskService) CreateSubtask(ctx context.Context, userID, taskID, title string) (domain.Subtask, error) {
	if _, err := s.repo.GetByID(ctx, userID, taskID); err != nil {
		return domain.Subtask{}, err
	}

	now := s.now().UTC()
	subtask := domain.Subtask{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertSubtask(ctx, subtask); err != nil {
		return domain.Subtask{}, err
	}
	return subtask, nil
}

// RolloverRecurring advances completed recurring tasks whose due date has
// passed to their next occurrence, resetting them to pending. Driven by
// the scheduler and safe to run repeatedly.
func (s *TaskService) RolloverRecurring(ctx context.Context) (int, error) {
	now := s.now().UTC()
	tasks, err := s.repo.ListRecurringDue(ctx, now)
	if err != nil {
		return 0, err
	}

	rolled := 0
	for _, task := range tasks {
		next, ok := task.NextOccurrence(task.DueDate)
		if !ok {
			continue
		}
		task.DueDate = next
		task.Status = domain.TaskStatusPending
		task.CompletedAt = nil
		task.UpdatedAt = now
		if err := s.repo.Update(ctx, task); err != nil {
			zap.L().Warn("failed to roll over recurring task",
				zap.String("task_id", task.ID), zap.Error(err))
			continue
		}
		s.invalidateStats(ctx, task.UserID)
		rolled++
	}
	return rolled, nil
}

func (s *TaskService) invalidateStats(ctx context.Context, userID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

// applyPatch folds a partial update into the task, keeping the
// CompletedAt bookkeeping consistent with status transitions.
func applyPatch(task *domain.Task, input domain.UpdateTaskInput, now time.Time) error {
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return domain.ErrInvalidStatus
		}
		previous := task.Status
		task.Status = *input.Status
		switch {
		case task.Status == domain.TaskStatusCompleted && previous != domain.TaskStatusCompleted:
			completed := now
			task.CompletedAt = &completed
		case task.Status != domain.TaskStatusCompleted:
			task.CompletedAt = nil
		}
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return domain.ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.CategorySet {
		if input.Category != nil {
			task.Category = *input.Category
		} else {
			task.Category = ""
		}
	}
	if input.TagsSet {
		tags := normalizeTags(input.Tags)
		if len(tags) > domain.MaxTagsPerTask {
			return domain.ErrTooManyTags
		}
		task.Tags = tags
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate.UTC()
	}
	if input.IsRecurring != nil {
		task.IsRecurring = *input.IsRecurring
	}
	if input.RecurringPattern != nil {
		if !input.RecurringPattern.Valid() {
			return domain.ErrInvalidRecurrence
		}
		task.RecurringPattern = *input.RecurringPattern
	}
	if input.RecurringInterval != nil {
		task.RecurringInterval = *input.RecurringInterval
	}
	if input.RecurringEndSet {
		task.RecurringEndDate = input.RecurringEndDate
	}
	if task.IsRecurring && task.RecurringPattern == domain.RecurringCustom && task.RecurringInterval < 1 {
		return domain.ErrInvalidRecurrence
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
