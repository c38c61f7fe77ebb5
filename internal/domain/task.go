package domain

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a user-owned to-do item. Ownership is exclusive: every read and
// write is scoped to UserID. There is no DeletedAt column on purpose —
// deletes are permanent.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"size:1000" json:"description"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	Priority    Priority   `gorm:"size:10;not null;default:medium" json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Overdue reports whether the task has a due date in the past and is still
// not completed. Derived, never stored.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed
}

// StatusFilter narrows a task listing by completion state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusPending
	StatusCompleted
)

// ParseStatusFilter maps a query-string value to a StatusFilter.
// Unknown or empty values normalize to StatusAll.
func ParseStatusFilter(s string) StatusFilter {
	switch s {
	case "pending":
		return StatusPending
	case "completed":
		return StatusCompleted
	}
	return StatusAll
}

func (f StatusFilter) String() string {
	switch f {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	}
	return "all"
}

// PriorityFilter narrows a task listing by priority level.
type PriorityFilter int

const (
	PriorityAny PriorityFilter = iota
	PriorityOnlyLow
	PriorityOnlyMedium
	PriorityOnlyHigh
)

// ParsePriorityFilter maps a query-string value to a PriorityFilter.
// Unknown or empty values normalize to PriorityAny.
func ParsePriorityFilter(s string) PriorityFilter {
	switch s {
	case "low":
		return PriorityOnlyLow
	case "medium":
		return PriorityOnlyMedium
	case "high":
		return PriorityOnlyHigh
	}
	return PriorityAny
}

func (f PriorityFilter) String() string {
	switch f {
	case PriorityOnlyLow:
		return "low"
	case PriorityOnlyMedium:
		return "medium"
	case PriorityOnlyHigh:
		return "high"
	}
	return "all"
}

// Level returns the concrete priority an exact-match filter selects, and
// false for PriorityAny.
func (f PriorityFilter) Level() (Priority, bool) {
	switch f {
	case PriorityOnlyLow:
		return PriorityLow, true
	case PriorityOnlyMedium:
		return PriorityMedium, true
	case PriorityOnlyHigh:
		return PriorityHigh, true
	}
	return "", false
}

// TaskFilters is the full filter specification for a task listing.
type TaskFilters struct {
	Status   StatusFilter
	Priority PriorityFilter
}
