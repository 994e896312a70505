package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not-started"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is the sole persistent entity. ID and UserID are immutable after
// creation; the remaining fields are rewritten wholesale on update.
type Task struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	UserID       string       `json:"userId" gorm:"index;not null"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status" gorm:"not null"`
	Priority     TaskPriority `json:"priority" gorm:"not null"`
	DueDate      time.Time    `json:"dueDate"`
	AssignedUser string       `json:"assignedUser,omitempty"`
}

// TaskInput is the create payload. Every field is optional; defaults are
// applied by NewTask. A userId in the payload is ignored.
type TaskInput struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      time.Time    `json:"dueDate"`
	AssignedUser string       `json:"assignedUser"`
}

// TaskUpdate carries the mutable fields of a task. Updates are a full
// replace: a field omitted from the payload is written as its zero value,
// clearing whatever the record held before. There is no partial patch.
type TaskUpdate struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      time.Time    `json:"dueDate"`
	AssignedUser string       `json:"assignedUser"`
}

// NewTask builds a fully populated task from a partial input. The caller
// identity always wins over any userId supplied in the input.
func NewTask(input TaskInput, callerID string) Task {
	task := Task{
		ID:           input.ID,
		UserID:       callerID,
		Name:         input.Name,
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		DueDate:      input.DueDate,
		AssignedUser: input.AssignedUser,
	}

	if task.ID == "" {
		task.ID = uuid.Must(uuid.NewV4()).String()
	}
	if task.Status == "" {
		task.Status = StatusInProgress
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if task.DueDate.IsZero() {
		task.DueDate = time.Now().UTC()
	}

	return task
}
