// Package client is a typed Go client for the taskboard REST API. It
// carries its own wire types mirroring the server's JSON contract, so it
// is importable from any module, and it always surfaces the API's
// human-readable error message instead of a bare status code.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Task is one task as returned by the API. Timestamps are RFC 3339
// strings; IsOverdue is computed server-side against the server clock.
type Task struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Status            string   `json:"status"`
	Priority          string   `json:"priority"`
	Category          string   `json:"category,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	DueDate           string   `json:"due_date"`
	CompletedAt       *string  `json:"completed_at,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
	IsRecurring       bool     `json:"is_recurring,omitempty"`
	RecurringPattern  string   `json:"recurring_pattern,omitempty"`
	RecurringInterval int      `json:"recurring_interval,omitempty"`
	RecurringEndDate  *string  `json:"recurring_end_date,omitempty"`
	IsOverdue         bool     `json:"is_overdue"`
}

type TaskList struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// CreateTaskRequest is the POST /api/tasks body. Title, Description and
// DueDate are required by the server; DueDate accepts RFC 3339 or plain
// YYYY-MM-DD.
type CreateTaskRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Status            *string  `json:"status,omitempty"`
	Priority          *string  `json:"priority,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	DueDate           string   `json:"due_date"`
	IsRecurring       *bool    `json:"is_recurring,omitempty"`
	RecurringPattern  *string  `json:"recurring_pattern,omitempty"`
	RecurringInterval *int     `json:"recurring_interval,omitempty"`
	RecurringEndDate  *string  `json:"recurring_end_date,omitempty"`
}

// UpdateTaskRequest is a partial patch: nil fields are omitted from the
// request body and left untouched by the server.
type UpdateTaskRequest struct {
	Title             *string  `json:"title,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Status            *string  `json:"status,omitempty"`
	Priority          *string  `json:"priority,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	DueDate           *string  `json:"due_date,omitempty"`
	IsRecurring       *bool    `json:"is_recurring,omitempty"`
	RecurringPattern  *string  `json:"recurring_pattern,omitempty"`
	RecurringInterval *int     `json:"recurring_interval,omitempty"`
	RecurringEndDate  *string  `json:"recurring_end_date,omitempty"`
}

type bulkUpdateRequest struct {
	IDs   []string          `json:"ids"`
	Patch UpdateTaskRequest `json:"patch"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkFailure identifies one task a bulk operation could not mutate.
type BulkFailure struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// BulkResult is the settled outcome of a bulk operation. The server
// reports partial failure here with a 200, not through the error path.
type BulkResult struct {
	Requested int           `json:"requested"`
	Succeeded int           `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

type UpcomingBuckets struct {
	Today    int `json:"today"`
	Tomorrow int `json:"tomorrow"`
	ThisWeek int `json:"this_week"`
	Later    int `json:"later"`
}

type Stats struct {
	Total          int             `json:"total"`
	Completed      int             `json:"completed"`
	InProgress     int             `json:"in_progress"`
	Pending        int             `json:"pending"`
	Overdue        int             `json:"overdue"`
	CompletionRate int             `json:"completion_rate"`
	Breakdown      map[string]int  `json:"breakdown"`
	Upcoming       UpcomingBuckets `json:"upcoming"`
}

// CalendarCell is one slot of the month grid; Blank marks the leading
// filler cells before the 1st.
type CalendarCell struct {
	Day   int    `json:"day"`
	Blank bool   `json:"blank"`
	Tasks []Task `json:"tasks,omitempty"`
}

type CalendarMonth struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Cells []CalendarCell `json:"cells"`
}

type Subtask struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type createSubtaskRequest struct {
	Title string `json:"title"`
}

// APIError is the decoded error envelope of a non-2xx response.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

func New(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListOptions mirrors the GET /api/tasks query surface. Zero values are
// omitted from the request.
type ListOptions struct {
	Search    string
	Status    string
	Priority  string
	Category  string
	Tag       string
	Ownership string
	DueFrom   string
	DueTo     string
	Overdue   bool
	Sort      string
	Direction string
	Limit     int
}

func (o ListOptions) query() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set("search", o.Search)
	set("status", o.Status)
	set("priority", o.Priority)
	set("category", o.Category)
	set("tag", o.Tag)
	set("ownership", o.Ownership)
	set("due_from", o.DueFrom)
	set("due_to", o.DueTo)
	set("sort", o.Sort)
	set("direction", o.Direction)
	if o.Overdue {
		values.Set("overdue", "true")
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	return values
}

func (c *Client) List(ctx context.Context, opts ListOptions) (TaskList, error) {
	var out TaskList
	path := "/api/tasks"
	if query := opts.query().Encode(); query != "" {
		path += "?" + query
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, taskID string) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(taskID), nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, req CreateTaskRequest) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", req, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, taskID string, patch UpdateTaskRequest) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(taskID), patch, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(taskID), nil, nil)
}

func (c *Client) BulkUpdate(ctx context.Context, ids []string, patch UpdateTaskRequest) (BulkResult, error) {
	var out BulkResult
	err := c.do(ctx, http.MethodPatch, "/api/tasks/bulk", bulkUpdateRequest{IDs: ids, Patch: patch}, &out)
	return out, err
}

func (c *Client) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	var out BulkResult
	err := c.do(ctx, http.MethodDelete, "/api/tasks/bulk", bulkDeleteRequest{IDs: ids}, &out)
	return out, err
}

func (c *Client) Calendar(ctx context.Context, year int, month int) (CalendarMonth, error) {
	var out CalendarMonth
	path := fmt.Sprintf("/api/tasks/calendar?year=%d&month=%d", year, month)
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) ListSubtasks(ctx context.Context, taskID string) ([]Subtask, error) {
	var out []Subtask
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(taskID)+"/subtasks", nil, &out)
	return out, err
}

func (c *Client) CreateSubtask(ctx context.Context, taskID, title string) (Subtask, error) {
	var out Subtask
	err := c.do(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(taskID)+"/subtasks",
		createSubtaskRequest{Title: title}, &out)
	return out, err
}

func (c *Client) Stats(ctx context.Context, contextTag string) (Stats, error) {
	path := "/api/tasks/stats"
	if contextTag != "" {
		path += "?context_tag=" + url.QueryEscape(contextTag)
	}
	var out Stats
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, payload)
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError extracts the server's message envelope, falling back to
// a generic message when the body is not the expected shape.
func decodeAPIError(status int, payload []byte) *APIError {
	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Error.Message != "" {
		return &APIError{Code: envelope.Error.Code, Message: envelope.Error.Message}
	}
	return &APIError{Code: status, Message: http.StatusText(status)}
}
