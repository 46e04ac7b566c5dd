package seed

import (
	"testing"
	"time"

	"taskmanager/internal/domain"

	"github.com/google/uuid"
)

func TestAssignTasksResolvesOwners(t *testing.T) {
	owners := map[string]uuid.UUID{}
	for _, u := range SampleUsers {
		owners[u.Username] = uuid.New()
	}

	assigned, skipped, err := AssignTasks(SampleTasks, owners)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if len(assigned) != len(SampleTasks) {
		t.Fatalf("assigned %d, want %d", len(assigned), len(SampleTasks))
	}

	first := assigned[0]
	if first.Owner != owners["john_doe"] || first.Task.UserID != first.Owner {
		t.Fatalf("first task owner = %s", first.Owner)
	}
	want := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	if first.Task.DueDate == nil || !first.Task.DueDate.Equal(want) {
		t.Fatalf("due date = %v, want %v", first.Task.DueDate, want)
	}
	if first.Task.Priority != domain.PriorityHigh {
		t.Fatalf("priority = %q", first.Task.Priority)
	}
	if !assigned[1].Task.Completed {
		t.Fatal("second sample task should be completed")
	}
}

func TestAssignTasksSkipsUnknownUsers(t *testing.T) {
	owners := map[string]uuid.UUID{"john_doe": uuid.New()}

	assigned, skipped, err := AssignTasks(SampleTasks, owners)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(assigned) != 2 {
		t.Fatalf("assigned %d, want 2", len(assigned))
	}
	if len(skipped) != 3 {
		t.Fatalf("skipped %d, want 3", len(skipped))
	}
	for _, st := range skipped {
		if st.UserRef == "john_doe" {
			t.Fatalf("john_doe task skipped: %q", st.Title)
		}
	}
}

func TestAssignTasksRejectsBadDueDate(t *testing.T) {
	samples := []SampleTask{{UserRef: "u", Title: "x", DueDate: "not a date"}}
	if _, _, err := AssignTasks(samples, map[string]uuid.UUID{"u": uuid.New()}); err == nil {
		t.Fatal("expected error for invalid due date")
	}
}

func TestSampleUsersAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range SampleUsers {
		if len(u.Username) < 3 || len(u.Username) > 30 {
			t.Errorf("username %q length out of range", u.Username)
		}
		if len(u.Password) < 6 {
			t.Errorf("password for %q too short", u.Username)
		}
		if seen[u.Email] {
			t.Errorf("duplicate email %q", u.Email)
		}
		seen[u.Email] = true
	}
}
