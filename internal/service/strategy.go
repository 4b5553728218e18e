package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dom "propboard/internal/domain"
	"propboard/internal/repo"
)

// NewTaskInput is what callers supply when creating a task. Due date and
// priority are applied after the strategy chain runs.
type NewTaskInput struct {
	Title       string
	Description string
	PortfolioID *string
}

// CreationStrategy is one way to create a task. Strategies are tried in
// order; a failure falls through to the next one.
type CreationStrategy interface {
	// CanHandle reports whether the strategy is usable at all (e.g. the
	// remote endpoint is configured).
	CanHandle() bool
	Create(ctx context.Context, userID string, in NewTaskInput) (dom.Task, error)
}

// FunctionStrategy creates a task through the remote labeling function,
// which returns the task enriched with an AI-picked label. Any transport
// error or non-2xx response is surfaced to the caller so the chain can
// fall back to a direct insert.
type FunctionStrategy struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewFunctionStrategy builds the remote strategy. An empty baseURL makes
// it report CanHandle false.
func NewFunctionStrategy(baseURL, token string, client *http.Client) *FunctionStrategy {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &FunctionStrategy{baseURL: baseURL, token: token, client: client}
}

func (s *FunctionStrategy) CanHandle() bool {
	return s.baseURL != ""
}

type functionRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PortfolioID *string `json:"portfolio_id"`
}

type functionResponse struct {
	TaskID      string     `json:"task_id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Status      string     `json:"status"`
	Label       string     `json:"label"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	PortfolioID *string    `json:"portfolio_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s *FunctionStrategy) Create(ctx context.Context, userID string, in NewTaskInput) (dom.Task, error) {
	body, err := json.Marshal(functionRequest{
		Title:       in.Title,
		Description: in.Description,
		PortfolioID: in.PortfolioID,
	})
	if err != nil {
		return dom.Task{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/functions/v1/create-task-with-ai", bytes.NewReader(body))
	if err != nil {
		return dom.Task{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return dom.Task{}, fmt.Errorf("task function: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return dom.Task{}, fmt.Errorf("task function: status %d: %s", resp.StatusCode, payload)
	}

	var out functionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return dom.Task{}, fmt.Errorf("task function: decode: %w", err)
	}
	return dom.Task{
		ID:          out.TaskID,
		UserID:      userID,
		Title:       out.Title,
		Description: out.Description,
		Completed:   out.Completed,
		Status:      out.Status,
		Label:       out.Label,
		Priority:    out.Priority,
		DueDate:     out.DueDate,
		PortfolioID: out.PortfolioID,
		CreatedAt:   out.CreatedAt,
		UpdatedAt:   out.UpdatedAt,
	}, nil
}

// DirectStrategy inserts the task row straight into the database with
// default state. It is the guaranteed fallback: task creation must never
// block on the labeling function being up.
type DirectStrategy struct {
	tasks repo.TaskRepo
}

func NewDirectStrategy(tasks repo.TaskRepo) *DirectStrategy {
	return &DirectStrategy{tasks: tasks}
}

func (s *DirectStrategy) CanHandle() bool { return true }

func (s *DirectStrategy) Create(ctx context.Context, userID string, in NewTaskInput) (dom.Task, error) {
	return s.tasks.Save(ctx, dom.Task{
		ID:          dom.NewID(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		Status:      dom.StatusTodo,
		Label:       "admin",
		Priority:    dom.PriorityMedium,
		PortfolioID: in.PortfolioID,
	})
}
