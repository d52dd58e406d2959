package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// ParseTaskTime accepts RFC 3339 timestamps as well as plain dates, and
// rejects anything else (a malformed date must fail loudly, never turn
// into a zero value that silently compares).
func ParseTaskTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidTaskPayload
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidTaskPayload
	}
	return parsed.UTC(), nil
}

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	dueDate, err := ParseTaskTime(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityMedium,
		Tags:        req.Tags,
		DueDate:     dueDate,
	}

	if req.Status != nil {
		input.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.Category != nil {
		input.Category = strings.TrimSpace(*req.Category)
	}
	if req.IsRecurring != nil {
		input.IsRecurring = *req.IsRecurring
	}
	if req.RecurringPattern != nil {
		input.RecurringPattern = domain.RecurringPattern(*req.RecurringPattern)
	}
	if req.RecurringInterval != nil {
		input.RecurringInterval = *req.RecurringInterval
	}
	if req.RecurringEndDate != nil {
		end, err := ParseTaskTime(*req.RecurringEndDate)
		if err != nil {
			return domain.CreateTaskInput{}, err
		}
		input.RecurringEndDate = &end
	}

	if input.IsRecurring && !input.RecurringPattern.Valid() {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return input, nil
}

// BuildUpdateTaskInput builds a partial patch. The raw JSON map tells
// apart "field absent" from "field present but null": a present-but-null
// value clears clearable fields and is rejected for the rest.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Title = &value
	}

	if hasJSONField(raw, "description") {
		if req.Description == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Description = req.Description
	}

	if hasJSONField(raw, "status") {
		if req.Status == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := domain.TaskStatus(*req.Status)
		if !value.Valid() {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Status = &value
	}

	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := domain.TaskPriority(*req.Priority)
		if !value.Valid() {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Priority = &value
	}

	if hasJSONField(raw, "category") {
		input.CategorySet = true
		if req.Category != nil {
			value := strings.TrimSpace(*req.Category)
			input.Category = &value
		} else if !isJSONNull(raw["category"]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	if hasJSONField(raw, "tags") {
		if isJSONNull(raw["tags"]) {
			input.TagsSet = true
		} else {
			if req.Tags == nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			input.TagsSet = true
			input.Tags = req.Tags
		}
	}

	if hasJSONField(raw, "due_date") {
		if req.DueDate == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := ParseTaskTime(*req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.DueDate = &parsed
	}

	if hasJSONField(raw, "is_recurring") {
		if req.IsRecurring == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.IsRecurring = req.IsRecurring
	}

	if hasJSONField(raw, "recurring_pattern") {
		if req.RecurringPattern == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := domain.RecurringPattern(*req.RecurringPattern)
		if !value.Valid() {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.RecurringPattern = &value
	}

	if hasJSONField(raw, "recurring_interval") {
		if req.RecurringInterval == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.RecurringInterval = req.RecurringInterval
	}

	if hasJSONField(raw, "recurring_end_date") {
		input.RecurringEndSet = true
		if req.RecurringEndDate != nil {
			parsed, err := ParseTaskTime(*req.RecurringEndDate)
			if err != nil {
				return domain.UpdateTaskInput{}, err
			}
			input.RecurringEndDate = &parsed
		} else if !isJSONNull(raw["recurring_end_date"]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	return input, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	for _, field := range []string{
		"title", "description", "status", "priority", "category", "tags",
		"due_date", "is_recurring", "recurring_pattern", "recurring_interval",
		"recurring_end_date",
	} {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
