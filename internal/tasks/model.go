package tasks

import "time"

// Priority is the enumerated task priority. Anything outside the set
// fails validation rather than being coerced.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a persisted task record scoped to one owning account.
type Task struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"userId"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	Assignee       string    `db:"assignee" json:"assignee"`
	EstimatedHours float64   `db:"estimated_hours" json:"estimatedHours"`
	Priority       Priority  `db:"priority" json:"priority"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateTaskRequest carries the typed request body for task creation.
// Pointer fields distinguish "omitted" from "zero" so defaults apply
// only to what the caller left out.
type CreateTaskRequest struct {
	Title          string   `json:"title"`
	Description    *string  `json:"description"`
	Assignee       *string  `json:"assignee"`
	EstimatedHours *float64 `json:"estimatedHours"`
	Priority       *string  `json:"priority"`
}

// UpdateTaskRequest is a partial update: absent fields keep their
// stored values, and the owner reference is never touched.
type UpdateTaskRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Assignee       *string  `json:"assignee"`
	EstimatedHours *float64 `json:"estimatedHours"`
	Priority       *string  `json:"priority"`
}
