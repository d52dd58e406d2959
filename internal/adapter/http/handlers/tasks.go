package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/core/taskset"
	"taskboard/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService, now: time.Now}
}

// WithClock overrides the reference clock, for tests.
func (h *TaskHandler) WithClock(now func() time.Time) *TaskHandler {
	h.now = now
	return h
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)
	now := h.now().UTC()

	criteria := taskset.Criteria{
		SearchText: c.Query("search"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Category:   c.Query("category"),
		Tag:        c.Query("tag"),
		Ownership:  taskset.Ownership(c.Query("ownership")),
		Now:        now,
	}
	if c.Query("overdue") == "true" {
		criteria.OverdueOnly = true
	}
	if from := c.Query("due_from"); from != "" {
		parsed, err := validation.ParseTaskTime(from)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
			return
		}
		criteria.Due.From = parsed
	}
	if to := c.Query("due_to"); to != "" {
		parsed, err := validation.ParseTaskTime(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
			return
		}
		criteria.Due.To = parsed
	}

	key := taskset.SortKey(strings.ReplaceAll(strings.ToLower(c.Query("sort")), "-", "_"))
	direction := taskset.SortAsc
	if c.Query("direction") == string(taskset.SortDesc) {
		direction = taskset.SortDesc
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
			return
		}
		limit = parsed
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID, criteria, key, direction, limit)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTasks, lang))
		return
	}

	c.JSON(http.StatusOK, dto.TaskList{
		Tasks: mapper.ToTaskItems(tasks, now),
		Total: len(tasks),
	})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
			return
		}
		zap.L().Error("failed to get task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTasks, lang))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.now().UTC()))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, input)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
			return
		}
		zap.L().Error("failed to create task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task, h.now().UTC()))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	input, ok := h.bindUpdatePayload(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, input)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
			return
		}
		zap.L().Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.now().UTC()))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
			return
		}
		zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang))
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkUpdate applies one patch to a set of tasks and always reports the
// settled outcome per item; partial failure is a 200 with failure details,
// not an opaque error.
func (h *TaskHandler) BulkUpdate(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	raw, body, ok := readRawBody(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	var req dto.BulkUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	var rawPatch map[string]json.RawMessage
	if patch, exists := raw["patch"]; exists {
		if err := json.Unmarshal(patch, &rawPatch); err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
			return
		}
	}

	input, err := validation.BuildUpdateTaskInput(req.Patch, rawPatch)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	result := h.taskService.BulkUpdate(c.Request.Context(), userID, req.IDs, input)
	c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) BulkDelete(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	result := h.taskService.BulkDelete(c.Request.Context(), userID, req.IDs)
	c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) Stats(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	stats, err := h.taskService.Stats(c.Request.Context(), userID, c.Query("context_tag"), h.now().UTC())
	if err != nil {
		zap.L().Error("failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTaskStats, lang))
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *TaskHandler) Calendar(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1970 || year > 9999 {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCalendar, lang))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCalendar, lang))
		return
	}

	calendar, err := h.taskService.CalendarMonth(c.Request.Context(), userID, year, time.Month(month))
	if err != nil {
		zap.L().Error("failed to build calendar", zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTaskCalendar, lang))
		return
	}

	c.JSON(http.StatusOK, mapper.ToCalendarMonth(calendar, h.now().UTC()))
}

func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	subtasks, err := h.taskService.ListSubtasks(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
			return
		}
		zap.L().Error("failed to list subtasks", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListSubtasks, lang))
		return
	}

	c.JSON(http.StatusOK, mapper.ToSubtaskItems(subtasks))
}

func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID := middleware.GetUserID(c)

	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang))
		return
	}

	var req dto.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return
	}

	subtask, err := h.taskService.CreateSubtask(c.Request.Context(), userID, taskID, strings.TrimSpace(req.Title))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
			return
		}
		zap.L().Error("failed to create subtask", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateSubtask, lang))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToSubtaskItem(subtask))
}

// bindUpdatePayload decodes a partial task patch together with the raw
// field set, so present-but-null and absent fields can be told apart.
func (h *TaskHandler) bindUpdatePayload(c *gin.Context, lang string) (domain.UpdateTaskInput, bool) {
	raw, body, ok := readRawBody(c)
	if !ok {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return domain.UpdateTaskInput{}, false
	}

	var req dto.UpdateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return domain.UpdateTaskInput{}, false
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
		return domain.UpdateTaskInput{}, false
	}
	return input, true
}

func readRawBody(c *gin.Context) (map[string]json.RawMessage, []byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, nil, false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, false
	}
	return raw, body, true
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidPriority) ||
		errors.Is(err, domain.ErrInvalidRecurrence) ||
		errors.Is(err, domain.ErrTooManyTags)
}
