package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestApplyCompletionForcesDone(t *testing.T) {
	task := Task{Status: StatusTodo}
	task.ApplyCompletion(true, nil)
	if !task.Completed || task.Status != StatusDone {
		t.Fatalf("expected completed/done, got completed=%v status=%q", task.Completed, task.Status)
	}

	// completed wins even when a conflicting status is passed alongside
	task = Task{Status: StatusTodo}
	task.ApplyCompletion(true, strPtr(StatusTodo))
	if task.Status != StatusDone {
		t.Fatalf("completed=true must force done, got %q", task.Status)
	}
}

func TestApplyCompletionReopen(t *testing.T) {
	cases := []struct {
		name   string
		prev   string
		status *string
		want   string
	}{
		{"explicit status", StatusDone, strPtr(StatusTodo), StatusTodo},
		{"falls back to todo from done", StatusDone, nil, StatusTodo},
		{"falls back to todo from empty", "", nil, StatusTodo},
		{"keeps previous open status", StatusTodo, nil, StatusTodo},
		{"ignores empty explicit status", StatusDone, strPtr(""), StatusTodo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := Task{Completed: true, Status: tc.prev}
			task.ApplyCompletion(false, tc.status)
			if task.Completed {
				t.Fatal("expected completed=false")
			}
			if task.Status != tc.want {
				t.Fatalf("expected status %q, got %q", tc.want, task.Status)
			}
		})
	}
}

func TestIsCanonicalLabel(t *testing.T) {
	for _, l := range CanonicalLabels {
		if !IsCanonicalLabel(l) {
			t.Fatalf("%q should be canonical", l)
		}
	}
	// legacy values are allowed on rows but are not canonical
	for _, l := range []string{"general", "misc", ""} {
		if IsCanonicalLabel(l) {
			t.Fatalf("%q should not be canonical", l)
		}
	}
}

func TestParseID(t *testing.T) {
	id := NewID()
	got, err := ParseID("  " + id + " ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("expected %q, got %q", id, got)
	}
	for _, bad := range []string{"", "   ", "not-a-uuid", "123"} {
		if _, err := ParseID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
