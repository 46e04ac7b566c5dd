package domain

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPriorityValid(t *testing.T) {
	cases := []struct {
		p    Priority
		want bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{"", false},
		{"high", false},
		{"Urgent", false},
	}
	for _, tc := range cases {
		if got := tc.p.Valid(); got != tc.want {
			t.Fatalf("Priority(%q).Valid() = %v; want %v", tc.p, got, tc.want)
		}
	}
}

func TestTaskInputDefaults(t *testing.T) {
	owner := uuid.New()
	task := TaskInput{Title: "  Buy milk "}.NewTask(owner)

	if task.UserID != owner {
		t.Fatalf("expected owner %s, got %s", owner, task.UserID)
	}
	if task.Title != "Buy milk" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("expected default priority Medium, got %q", task.Priority)
	}
	if task.Completed || task.Description != "" || task.DueDate != nil {
		t.Fatalf("unexpected defaults: %+v", task)
	}
}

func TestTaskPatchApplyOnlySuppliedFields(t *testing.T) {
	due := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	task := &Task{Title: "t", Description: "d", Priority: PriorityHigh, DueDate: &due}

	done := true
	patch := TaskPatch{Completed: &done}
	if patch.Empty() {
		t.Fatal("patch with completed should not be empty")
	}
	patch.Apply(task)

	if !task.Completed {
		t.Fatal("expected completed to be set")
	}
	if task.Title != "t" || task.Description != "d" || task.Priority != PriorityHigh || task.DueDate != &due {
		t.Fatalf("untouched fields changed: %+v", task)
	}
}

func TestTaskPatchClearsDueDate(t *testing.T) {
	due := time.Now()
	task := &Task{DueDate: &due}
	TaskPatch{DueDateSet: true}.Apply(task)
	if task.DueDate != nil {
		t.Fatalf("expected due date cleared, got %v", task.DueDate)
	}
}

func TestTaskPatchEmpty(t *testing.T) {
	if !(TaskPatch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
}

func TestDueDateUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2025-06-20"`, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
		{`"2025-06-20T10:30:00Z"`, time.Date(2025, 6, 20, 10, 30, 0, 0, time.UTC)},
		{`"2025-06-20T12:30:00+02:00"`, time.Date(2025, 6, 20, 10, 30, 0, 0, time.UTC)},
		{`1750377600000`, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)},
		{`253402300799999`, time.Date(9999, 12, 31, 23, 59, 59, 999e6, time.UTC)},
	}
	for _, tc := range cases {
		var d DueDate
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if !d.Time.Equal(tc.want) {
			t.Fatalf("unmarshal %s = %v; want %v", tc.in, d.Time, tc.want)
		}
	}
}

func TestDueDateUnmarshalInvalid(t *testing.T) {
	for _, in := range []string{
		`"tomorrow"`,
		`true`,
		`{}`,
		`253402300800000`,
		`-62167219200001`,
		`"9999-12-31T23:00:00-02:00"`,
	} {
		var d DueDate
		if err := json.Unmarshal([]byte(in), &d); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestErrorIsByCode(t *testing.T) {
	err := NotFound("Task not found or not owned by user")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is to match by code")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("did not expect match with a different code")
	}

	wrapped := WrapError(CodeConflict, "User already exists", errors.New("duplicate key"))
	if !errors.Is(wrapped, ErrConflict) {
		t.Fatal("expected wrapped conflict to match")
	}
	if CodeOf(errors.New("boom")) != CodeInternal {
		t.Fatal("untyped errors should map to internal")
	}
}

func TestCodeHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:      http.StatusBadRequest,
		CodeConflict:        http.StatusBadRequest,
		CodeUnauthenticated: http.StatusUnauthorized,
		CodeNotFound:        http.StatusNotFound,
		CodeInternal:        http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := code.HTTPStatus(); got != want {
			t.Fatalf("%s.HTTPStatus() = %d; want %d", code, got, want)
		}
	}
}
