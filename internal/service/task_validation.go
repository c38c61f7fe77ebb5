package service

import (
	"time"
	"unicode/utf8"

	"github.com/taskhub/taskhub-backend/internal/domain"
)

// DueDateLayout is the wire format for task due dates.
const DueDateLayout = "2006-01-02"

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000
)

const (
	msgTitleRequired    = "Task title is required."
	msgTitleTooLong     = "Task title cannot exceed 255 characters."
	msgDescTooLong      = "Description cannot exceed 1000 characters."
	msgDueDateInvalid   = "Please provide a valid due date."
	msgDueDateInPast    = "Due date cannot be in the past."
	msgPriorityRequired = "Please select a priority level."
	msgPriorityInvalid  = "Priority must be low, medium, or high."
)

// validatedTask carries the parsed, rule-checked fields of a create payload.
type validatedTask struct {
	title       string
	description *string
	dueDate     *time.Time
	priority    domain.Priority
}

// validateCreate checks a creation payload against the field rules. The due
// date, when present, must be today or later at date granularity.
func validateCreate(req CreateTaskRequest, now time.Time) (*validatedTask, ValidationErrors) {
	errs := ValidationErrors{}

	if req.Title == "" {
		errs["title"] = msgTitleRequired
	} else if utf8.RuneCountInString(req.Title) > maxTitleLen {
		errs["title"] = msgTitleTooLong
	}

	var description *string
	if req.Description != nil && *req.Description != "" {
		if utf8.RuneCountInString(*req.Description) > maxDescriptionLen {
			errs["description"] = msgDescTooLong
		} else {
			description = req.Description
		}
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse(DueDateLayout, *req.DueDate)
		if err != nil {
			errs["due_date"] = msgDueDateInvalid
		} else if parsed.Before(today(now)) {
			errs["due_date"] = msgDueDateInPast
		} else {
			dueDate = &parsed
		}
	}

	priority := domain.Priority(req.Priority)
	if req.Priority == "" {
		errs["priority"] = msgPriorityRequired
	} else if !priority.Valid() {
		errs["priority"] = msgPriorityInvalid
	}

	if errs.Any() {
		return nil, errs
	}

	return &validatedTask{
		title:       req.Title,
		description: description,
		dueDate:     dueDate,
		priority:    priority,
	}, nil
}

// validateUpdate checks an update payload. The same field rules apply except
// that a due date in the past is accepted, so an already-overdue task can be
// edited without clearing its date first.
func validateUpdate(req UpdateTaskRequest) ValidationErrors {
	errs := ValidationErrors{}

	if req.Title != nil {
		if *req.Title == "" {
			errs["title"] = msgTitleRequired
		} else if utf8.RuneCountInString(*req.Title) > maxTitleLen {
			errs["title"] = msgTitleTooLong
		}
	}

	if req.Description != nil && utf8.RuneCountInString(*req.Description) > maxDescriptionLen {
		errs["description"] = msgDescTooLong
	}

	if req.DueDate != nil && *req.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, *req.DueDate); err != nil {
			errs["due_date"] = msgDueDateInvalid
		}
	}

	if req.Priority != nil && !domain.Priority(*req.Priority).Valid() {
		errs["priority"] = msgPriorityInvalid
	}

	return errs
}

// today returns the server's current calendar date as a UTC midnight, the
// same form time.Parse gives a bare date, so comparisons are at date
// granularity regardless of the server's zone.
func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
