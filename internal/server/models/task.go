package models

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Urgency codes reported for pending tasks.
const (
	CodeGreen     = "green"
	CodeAmber     = "amber"
	CodeRed       = "red"
	CodeUndecided = "undecided"
)

// Task belongs to a todo list; its owner is the owner of that list.
type Task struct {
	ID          string     `json:"id"`
	TodoID      string     `json:"todoId"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	Code        *string    `json:"code"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}

// Classify sets Code from the time left until the due date. Completed
// tasks carry no code.
func (t *Task) Classify(now time.Time) {
	if t.Status != TaskPending {
		t.Code = nil
		return
	}

	left := t.DueDate.Sub(now)

	var code string
	switch {
	case left >= 72*time.Hour:
		code = CodeGreen
	case left > 3*time.Hour && left < 24*time.Hour:
		code = CodeAmber
	case left <= 3*time.Hour:
		code = CodeRed
	default:
		code = CodeUndecided
	}
	t.Code = &code
}
