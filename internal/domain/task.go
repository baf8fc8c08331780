package domain

import "time"

// DueDateFormat is the wire format for due dates (YYYY-MM-DD).
const DueDateFormat = "2006-01-02"

// Default field values applied when a create request omits them.
const (
	DefaultStatus   = "Pending"
	DefaultPriority = "Medium"
)

// Task is a to-do item with scheduling and classification metadata.
// Status and Priority are free-form strings; no transition graph or
// enumeration is enforced server-side.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Status      string
	Priority    string
}

// NewTask builds a Task for creation, applying the default status and
// priority when the caller leaves them empty. The ID is assigned by
// the store on insert.
func NewTask(title, description string, dueDate time.Time, status, priority string) *Task {
	if status == "" {
		status = DefaultStatus
	}
	if priority == "" {
		priority = DefaultPriority
	}

	return &Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
		Priority:    priority,
	}
}

// ParseDueDate parses a YYYY-MM-DD date string.
// Returns ErrInvalidDueDate if the value does not parse.
func ParseDueDate(value string) (time.Time, error) {
	d, err := time.Parse(DueDateFormat, value)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return d, nil
}

// HasDueDate reports whether the task carries a due date. A zero
// DueDate marks a row without one; it serializes as null.
func (t *Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// FormattedDueDate returns the due date in wire format, or the empty
// string when no due date is set.
func (t *Task) FormattedDueDate() string {
	if !t.HasDueDate() {
		return ""
	}
	return t.DueDate.Format(DueDateFormat)
}
