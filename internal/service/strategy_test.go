package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	dom "propboard/internal/domain"
)

func TestFunctionStrategyCanHandle(t *testing.T) {
	if NewFunctionStrategy("", "tok", nil).CanHandle() {
		t.Fatal("expected CanHandle false without a base URL")
	}
	if !NewFunctionStrategy("http://fn.local", "tok", nil).CanHandle() {
		t.Fatal("expected CanHandle true with a base URL")
	}
}

func TestFunctionStrategyCreate(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody functionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(functionResponse{
			TaskID:      "11111111-1111-4111-8111-111111111111",
			Title:       gotBody.Title,
			Description: gotBody.Description,
			Status:      dom.StatusTodo,
			Label:       "plumbing",
			Priority:    dom.PriorityHigh,
		})
	}))
	defer srv.Close()

	st := NewFunctionStrategy(srv.URL, "secret", srv.Client())
	task, err := st.Create(context.Background(), "user-1", NewTaskInput{
		Title:       "Fix boiler",
		Description: "No hot water in unit 4B",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotPath != "/functions/v1/create-task-with-ai" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody.Title != "Fix boiler" {
		t.Errorf("request title = %q", gotBody.Title)
	}
	if task.UserID != "user-1" {
		t.Errorf("user id = %q, want caller's", task.UserID)
	}
	if task.Label != "plumbing" || task.Priority != dom.PriorityHigh {
		t.Errorf("task not taken from response: %+v", task)
	}
}

func TestFunctionStrategyCreateNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	st := NewFunctionStrategy(srv.URL, "secret", srv.Client())
	if _, err := st.Create(context.Background(), "user-1", NewTaskInput{Title: "x"}); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestDirectStrategyDefaults(t *testing.T) {
	tasks := &stubTaskRepo{
		saveFn: func(_ context.Context, task dom.Task) (dom.Task, error) { return task, nil },
	}
	st := NewDirectStrategy(tasks)
	if !st.CanHandle() {
		t.Fatal("direct strategy must always handle")
	}
	task, err := st.Create(context.Background(), "user-1", NewTaskInput{Title: "Renew lease"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Completed || task.Status != dom.StatusTodo {
		t.Errorf("new task should be open: completed=%v status=%q", task.Completed, task.Status)
	}
	if task.Label != "admin" || task.Priority != dom.PriorityMedium {
		t.Errorf("defaults = %q/%q", task.Label, task.Priority)
	}
	if task.ID == "" {
		t.Error("expected generated id")
	}
}
