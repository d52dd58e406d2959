package dto

type TaskItem struct {
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
	Tasks []TaskItem `json:"tasks"`
	Total int        `json:"total"`
}

type CreateTaskRequest struct {
	Title             string   `json:"title" binding:"required,max=255"`
	Description       string   `json:"description" binding:"required,max=65535"`
	Status            *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed archived"`
	Priority          *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category          *string  `json:"category" binding:"omitempty,max=64"`
	Tags              []string `json:"tags" binding:"omitempty,max=5,dive,max=32"`
	DueDate           string   `json:"due_date" binding:"required"`
	IsRecurring       *bool    `json:"is_recurring"`
	RecurringPattern  *string  `json:"recurring_pattern" binding:"omitempty,oneof=daily weekly biweekly monthly yearly custom"`
	RecurringInterval *int     `json:"recurring_interval" binding:"omitempty,gte=1"`
	RecurringEndDate  *string  `json:"recurring_end_date"`
}

type UpdateTaskRequest struct {
	Title             *string  `json:"title" binding:"omitempty,max=255"`
	Description       *string  `json:"description" binding:"omitempty,max=65535"`
	Status            *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed archived"`
	Priority          *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category          *string  `json:"category" binding:"omitempty,max=64"`
	Tags              []string `json:"tags" binding:"omitempty,dive,max=32"`
	DueDate           *string  `json:"due_date"`
	IsRecurring       *bool    `json:"is_recurring"`
	RecurringPattern  *string  `json:"recurring_pattern" binding:"omitempty,oneof=daily weekly biweekly monthly yearly custom"`
	RecurringInterval *int     `json:"recurring_interval" binding:"omitempty,gte=1"`
	RecurringEndDate  *string  `json:"recurring_end_date"`
}

type BulkUpdateRequest struct {
	IDs   []string          `json:"ids" binding:"required,min=1,dive,required"`
	Patch UpdateTaskRequest `json:"patch" binding:"required"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

type SubtaskItem struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateSubtaskRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

type CalendarCell struct {
	Day   int        `json:"day"`
	Blank bool       `json:"blank"`
	Tasks []TaskItem `json:"tasks,omitempty"`
}

type CalendarMonth struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Cells []CalendarCell `json:"cells"`
}
