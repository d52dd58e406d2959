package tests

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/core/taskset"
)

type taskServiceMock struct {
	mock.Mock
}

var _ ports.TaskService = (*taskServiceMock)(nil)

func (m *taskServiceMock) ListTasks(ctx context.Context, userID string, criteria taskset.Criteria, key taskset.SortKey, direction taskset.SortDirection, limit int) ([]domain.Task, error) {
	args := m.Called(ctx, userID, criteria, key, direction, limit)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, userID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, userID, taskID string) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

func (m *taskServiceMock) Stats(ctx context.Context, userID, contextTag string, now time.Time) (taskset.Stats, error) {
	args := m.Called(ctx, userID, contextTag, now)
	return args.Get(0).(taskset.Stats), args.Error(1)
}

func (m *taskServiceMock) CalendarMonth(ctx context.Context, userID string, year int, month time.Month) (ports.CalendarMonth, error) {
	args := m.Called(ctx, userID, year, month)
	return args.Get(0).(ports.CalendarMonth), args.Error(1)
}

func (m *taskServiceMock) BulkUpdate(ctx context.Context, userID string, taskIDs []string, input domain.UpdateTaskInput) ports.BulkResult {
	args := m.Called(ctx, userID, taskIDs, input)
	return args.Get(0).(ports.BulkResult)
}

func (m *taskServiceMock) BulkDelete(ctx context.Context, userID string, taskIDs []string) ports.BulkResult {
	args := m.Called(ctx, userID, taskIDs)
	return args.Get(0).(ports.BulkResult)
}

func (m *taskServiceMock) ListSubtasks(ctx context.Context, userID, taskID string) ([]domain.Subtask, error) {
	args := m.Called(ctx, userID, taskID)
	var subtasks []domain.Subtask
	if value := args.Get(0); value != nil {
		subtasks = value.([]domain.Subtask)
	}
	return subtasks, args.Error(1)
}

func (m *taskServiceMock) CreateSubtask(ctx context.Context, userID, taskID, title string) (domain.Subtask, error) {
	args := m.Called(ctx, userID, taskID, title)
	return args.Get(0).(domain.Subtask), args.Error(1)
}
