package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type TaskRepository struct {
	db *sqlx.DB
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	ID                string         `db:"id"`
	UserID            string         `db:"user_id"`
	Title             string         `db:"title"`
	Description       string         `db:"description"`
	Status            string         `db:"status"`
	Priority          string         `db:"priority"`
	Category          sql.NullString `db:"category"`
	Tags              sql.NullString `db:"tags"`
	DueDate           time.Time      `db:"due_date"`
	CompletedAt       sql.NullTime   `db:"completed_at"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	IsRecurring       bool           `db:"is_recurring"`
	RecurringPattern  sql.NullString `db:"recurring_pattern"`
	RecurringInterval sql.NullInt64  `db:"recurring_interval"`
	RecurringEndDate  sql.NullTime   `db:"recurring_end_date"`
}

type subtaskRow struct {
	ID        string    `db:"id"`
	TaskID    string    `db:"task_id"`
	Title     string    `db:"title"`
	Done      bool      `db:"done"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *TaskRepository) List(ctx context.Context, q ports.ListQuery) ([]domain.Task, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT * FROM tasks WHERE user_id = ?`)
	args := []any{q.UserID}

	if q.Status != "" {
		query.WriteString(` AND status = ?`)
		args = append(args, string(q.Status))
	}
	if q.Priority != "" {
		query.WriteString(` AND priority = ?`)
		args = append(args, string(q.Priority))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		query.WriteString(` AND (title LIKE ? OR description LIKE ?)`)
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query.WriteString(` ORDER BY created_at, id`)
	if q.Limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, q.Limit)
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, err
	}
	return mapTaskRows(rows)
}

func (r *TaskRepository) GetByID(ctx context.Context, userID, taskID string) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return mapTaskRow(row)
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	row, err := toTaskRow(task)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, `
INSERT INTO tasks (
  id, user_id, title, description, status, priority, category, tags,
  due_date, completed_at, created_at, updated_at,
  is_recurring, recurring_pattern, recurring_interval, recurring_end_date
) VALUES (
  :id, :user_id, :title, :description, :status, :priority, :category, :tags,
  :due_date, :completed_at, :created_at, :updated_at,
  :is_recurring, :recurring_pattern, :recurring_interval, :recurring_end_date
)`, row)
	return err
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	row, err := toTaskRow(task)
	if err != nil {
		return err
	}
	result, err := r.db.NamedExecContext(ctx, `
UPDATE tasks SET
  title = :title,
  description = :description,
  status = :status,
  priority = :priority,
  category = :category,
  tags = :tags,
  due_date = :due_date,
  completed_at = :completed_at,
  updated_at = :updated_at,
  is_recurring = :is_recurring,
  recurring_pattern = :recurring_pattern,
  recurring_interval = :recurring_interval,
  recurring_end_date = :recurring_end_date
WHERE id = :id AND user_id = :user_id`, row)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish "row unchanged" from "row missing": MySQL reports
		// zero affected rows for both.
		var exists int
		if err := r.db.GetContext(ctx, &exists,
			`SELECT COUNT(*) FROM tasks WHERE id = ? AND user_id = ?`, task.ID, task.UserID); err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrTaskNotFound
		}
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) ListRecurringDue(ctx context.Context, before time.Time) ([]domain.Task, error) {
	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows, `
SELECT * FROM tasks
WHERE is_recurring = TRUE AND status = ? AND due_date < ?
ORDER BY due_date`, string(domain.TaskStatusCompleted), before)
	if err != nil {
		return nil, err
	}
	return mapTaskRows(rows)
}

func (r *TaskRepository) ListSubtasks(ctx context.Context, taskID string) ([]domain.Subtask, error) {
	var rows []subtaskRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM subtasks WHERE task_id = ? ORDER BY created_at, id`, taskID)
	if err != nil {
		return nil, err
	}

	subtasks := make([]domain.Subtask, 0, len(rows))
	for _, row := range rows {
		subtasks = append(subtasks, domain.Subtask(row))
	}
	return subtasks, nil
}

func (r *TaskRepository) InsertSubtask(ctx context.Context, subtask domain.Subtask) error {
	_, err := r.db.NamedExecContext(ctx, `
INSERT INTO subtasks (id, task_id, title, done, created_at, updated_at)
VALUES (:id, :task_id, :title, :done, :created_at, :updated_at)`, subtaskRow(subtask))
	return err
}

func mapTaskRows(rows []taskRow) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRow(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func mapTaskRow(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		Priority:    domain.TaskPriority(row.Priority),
		DueDate:     row.DueDate.UTC(),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
		IsRecurring: row.IsRecurring,
	}

	if row.Category.Valid {
		task.Category = row.Category.String
	}
	if row.Tags.Valid && row.Tags.String != "" {
		if err := json.Unmarshal([]byte(row.Tags.String), &task.Tags); err != nil {
			return domain.Task{}, fmt.Errorf("decode tags for task %s: %w", row.ID, err)
		}
	}
	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time.UTC()
		task.CompletedAt = &value
	}
	if row.RecurringPattern.Valid {
		task.RecurringPattern = domain.RecurringPattern(row.RecurringPattern.String)
	}
	if row.RecurringInterval.Valid {
		task.RecurringInterval = int(row.RecurringInterval.Int64)
	}
	if row.RecurringEndDate.Valid {
		value := row.RecurringEndDate.Time.UTC()
		task.RecurringEndDate = &value
	}
	return task, nil
}

func toTaskRow(task domain.Task) (taskRow, error) {
	row := taskRow{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		IsRecurring: task.IsRecurring,
	}

	if task.Category != "" {
		row.Category = sql.NullString{String: task.Category, Valid: true}
	}
	if len(task.Tags) > 0 {
		encoded, err := json.Marshal(task.Tags)
		if err != nil {
			return taskRow{}, fmt.Errorf("encode tags: %w", err)
		}
		row.Tags = sql.NullString{String: string(encoded), Valid: true}
	}
	if task.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: *task.CompletedAt, Valid: true}
	}
	if task.RecurringPattern != "" {
		row.RecurringPattern = sql.NullString{String: string(task.RecurringPattern), Valid: true}
	}
	if task.RecurringInterval > 0 {
		row.RecurringInterval = sql.NullInt64{Int64: int64(task.RecurringInterval), Valid: true}
	}
	if task.RecurringEndDate != nil {
		row.RecurringEndDate = sql.NullTime{Time: *task.RecurringEndDate, Valid: true}
	}
	return row, nil
}
