package domain

import "time"

// Task status values. A task is either open or done; completed is the
// source of truth and status follows it (see ApplyCompletion).
const (
	StatusTodo = "todo"
	StatusDone = "done"
)

// Task priority values.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Canonical task labels. Rows written before the taxonomy was fixed may
// carry other values; those are kept as-is on read.
var CanonicalLabels = []string{
	"maintenance", "compliance", "finance", "admin", "lettings",
	"inspection", "refurb", "legal", "operations", "tenant",
}

// IsCanonicalLabel reports whether label belongs to the current taxonomy.
func IsCanonicalLabel(label string) bool {
	for _, l := range CanonicalLabels {
		if l == label {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p string) bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is a unit of work, optionally assigned to a portfolio.
// ImageURL is the legacy single-attachment path; new attachments live in
// task_images rows.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Completed   bool
	Status      string
	Label       string
	Priority    string
	DueDate     *time.Time
	ImageURL    *string
	PortfolioID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyCompletion applies the completed/status coupling rule to t.
// completed=true forces status to done. completed=false restores the
// explicitly requested status when given, otherwise keeps the previous
// non-done status, otherwise falls back to todo.
func (t *Task) ApplyCompletion(completed bool, status *string) {
	t.Completed = completed
	if completed {
		t.Status = StatusDone
		return
	}
	if status != nil && *status != "" && *status != StatusDone {
		t.Status = *status
		return
	}
	if t.Status == "" || t.Status == StatusDone {
		t.Status = StatusTodo
	}
}

// TaskImage is one attachment row for a task. Path is the object key in
// the attachments bucket.
type TaskImage struct {
	ID        string
	TaskID    string
	Path      string
	CreatedAt time.Time
}
