package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

func ToTaskItems(tasks []domain.Task, now time.Time) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task, now))
	}
	return items
}

func ToTaskItem(task domain.Task, now time.Time) dto.TaskItem {
	item := dto.TaskItem{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Status:            string(task.Status),
		Priority:          string(task.Priority),
		Category:          task.Category,
		Tags:              task.Tags,
		DueDate:           task.DueDate.Format(time.RFC3339),
		CreatedAt:         task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         task.UpdatedAt.Format(time.RFC3339),
		IsRecurring:       task.IsRecurring,
		RecurringPattern:  string(task.RecurringPattern),
		RecurringInterval: task.RecurringInterval,
		IsOverdue:         task.IsOverdue(now),
	}

	if task.CompletedAt != nil {
		value := task.CompletedAt.Format(time.RFC3339)
		item.CompletedAt = &value
	}

	if task.RecurringEndDate != nil {
		value := task.RecurringEndDate.Format(time.RFC3339)
		item.RecurringEndDate = &value
	}

	return item
}

func ToSubtaskItems(subtasks []domain.Subtask) []dto.SubtaskItem {
	items := make([]dto.SubtaskItem, 0, len(subtasks))
	for _, subtask := range subtasks {
		items = append(items, ToSubtaskItem(subtask))
	}
	return items
}

func ToSubtaskItem(subtask domain.Subtask) dto.SubtaskItem {
	return dto.SubtaskItem{
		ID:        subtask.ID,
		TaskID:    subtask.TaskID,
		Title:     subtask.Title,
		Done:      subtask.Done,
		CreatedAt: subtask.CreatedAt.Format(time.RFC3339),
		UpdatedAt: subtask.UpdatedAt.Format(time.RFC3339),
	}
}

func ToCalendarMonth(month ports.CalendarMonth, now time.Time) dto.CalendarMonth {
	out := dto.CalendarMonth{
		Year:  month.Year,
		Month: int(month.Month),
		Cells: make([]dto.CalendarCell, 0, len(month.Days)),
	}
	for _, day := range month.Days {
		cell := dto.CalendarCell{
			Day:   day.Cell.Day,
			Blank: day.Cell.Blank(),
		}
		if len(day.Tasks) > 0 {
			cell.Tasks = ToTaskItems(day.Tasks, now)
		}
		out.Cells = append(out.Cells, cell)
	}
	return out
}
