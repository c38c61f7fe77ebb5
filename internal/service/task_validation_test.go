package service

import (
	"strings"
	"testing"
	"time"
)

var validationNow = time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestValidateCreate_Valid(t *testing.T) {
	req := CreateTaskRequest{
		Title:       "Buy milk",
		Description: strPtr("Two litres"),
		DueDate:     strPtr("2026-08-29"),
		Priority:    "low",
	}

	validated, errs := validateCreate(req, validationNow)
	if errs.Any() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if validated.title != "Buy milk" {
		t.Errorf("unexpected title %q", validated.title)
	}
	if validated.dueDate == nil || validated.dueDate.Format(DueDateLayout) != "2026-08-29" {
		t.Errorf("unexpected due date %v", validated.dueDate)
	}
}

func TestValidateCreate_DueDateToday(t *testing.T) {
	req := CreateTaskRequest{Title: "x", DueDate: strPtr("2026-08-28"), Priority: "medium"}
	if _, errs := validateCreate(req, validationNow); errs.Any() {
		t.Errorf("due date of today should be accepted, got %v", errs)
	}
}

func TestValidateCreate_FieldErrors(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateTaskRequest
		field   string
		message string
	}{
		{"empty title", CreateTaskRequest{Title: "", Priority: "low"}, "title", "Task title is required."},
		{"long title", CreateTaskRequest{Title: strings.Repeat("a", 256), Priority: "low"}, "title", "Task title cannot exceed 255 characters."},
		{"long description", CreateTaskRequest{Title: "x", Description: strPtr(strings.Repeat("d", 1001)), Priority: "low"}, "description", "Description cannot exceed 1000 characters."},
		{"garbage due date", CreateTaskRequest{Title: "x", DueDate: strPtr("not-a-date"), Priority: "low"}, "due_date", "Please provide a valid due date."},
		{"past due date", CreateTaskRequest{Title: "x", DueDate: strPtr("2026-08-27"), Priority: "low"}, "due_date", "Due date cannot be in the past."},
		{"missing priority", CreateTaskRequest{Title: "x"}, "priority", "Please select a priority level."},
		{"bad priority", CreateTaskRequest{Title: "x", Priority: "urgent"}, "priority", "Priority must be low, medium, or high."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := validateCreate(tc.req, validationNow)
			if !errs.Any() {
				t.Fatal("expected validation errors")
			}
			if got := errs[tc.field]; got != tc.message {
				t.Errorf("field %q: expected %q, got %q", tc.field, tc.message, got)
			}
		})
	}
}

func TestValidateCreate_MultipleViolations(t *testing.T) {
	req := CreateTaskRequest{Title: "", DueDate: strPtr("nope"), Priority: "urgent"}
	_, errs := validateCreate(req, validationNow)
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(errs), errs)
	}
	for _, field := range []string{"title", "due_date", "priority"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected an error on %q", field)
		}
	}
}

func TestValidateUpdate_AllowsPastDueDate(t *testing.T) {
	// Creation rejects past dates; update deliberately does not, so stale
	// overdue tasks stay editable.
	req := UpdateTaskRequest{DueDate: strPtr("2020-01-01")}
	if errs := validateUpdate(req); errs.Any() {
		t.Errorf("expected past due date to be accepted on update, got %v", errs)
	}
}

func TestValidateUpdate_FieldErrors(t *testing.T) {
	cases := []struct {
		name  string
		req   UpdateTaskRequest
		field string
	}{
		{"empty title", UpdateTaskRequest{Title: strPtr("")}, "title"},
		{"long title", UpdateTaskRequest{Title: strPtr(strings.Repeat("a", 256))}, "title"},
		{"long description", UpdateTaskRequest{Description: strPtr(strings.Repeat("d", 1001))}, "description"},
		{"garbage due date", UpdateTaskRequest{DueDate: strPtr("13-37")}, "due_date"},
		{"bad priority", UpdateTaskRequest{Priority: strPtr("urgent")}, "priority"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validateUpdate(tc.req)
			if _, ok := errs[tc.field]; !ok {
				t.Errorf("expected an error on %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestValidateUpdate_OmittedFieldsPass(t *testing.T) {
	if errs := validateUpdate(UpdateTaskRequest{}); errs.Any() {
		t.Errorf("expected empty update to validate, got %v", errs)
	}
}
