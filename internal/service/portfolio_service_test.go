package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	dom "propboard/internal/domain"
	"propboard/internal/repo"

	"github.com/jackc/pgx/v5"
)

func strPtr(s string) *string { return &s }

func TestPortfolioServiceListWithTasksGroupsEveryPortfolio(t *testing.T) {
	portfolios := &stubPortfolioRepo{
		listFn: func(context.Context, repo.ListOptions) ([]dom.Portfolio, error) {
			return []dom.Portfolio{
				{ID: "p1", UserID: "u", Name: "Downtown"},
				{ID: "p2", UserID: "u", Name: "Suburbs"},
			}, nil
		},
	}
	tasks := &stubTaskRepo{
		listFn: func(_ context.Context, opts repo.ListOptions) ([]dom.Task, error) {
			return []dom.Task{
				{ID: "t1", UserID: "u", PortfolioID: strPtr("p1")},
				{ID: "t2", UserID: "u", PortfolioID: strPtr("p1")},
			}, nil
		},
	}
	svc := NewPortfolioService(portfolios, tasks, nil)

	out, err := svc.ListWithTasks(context.Background(), "u")
	if err != nil {
		t.Fatalf("ListWithTasks: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d groups, want 2", len(out))
	}
	if len(out[0].Tasks) != 2 {
		t.Errorf("p1 has %d tasks, want 2", len(out[0].Tasks))
	}
	if out[1].Tasks == nil || len(out[1].Tasks) != 0 {
		t.Errorf("empty portfolio should carry an empty (non-nil) task list, got %v", out[1].Tasks)
	}
}

func TestPortfolioServiceListWithTasksNoPortfolios(t *testing.T) {
	portfolios := &stubPortfolioRepo{
		listFn: func(context.Context, repo.ListOptions) ([]dom.Portfolio, error) { return nil, nil },
	}
	// tasks repo must not be queried when there is nothing to group
	svc := NewPortfolioService(portfolios, &stubTaskRepo{}, nil)

	out, err := svc.ListWithTasks(context.Background(), "u")
	if err != nil {
		t.Fatalf("ListWithTasks: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %d groups, want 0", len(out))
	}
}

func TestPortfolioServiceCreateValidation(t *testing.T) {
	svc := NewPortfolioService(&stubPortfolioRepo{}, &stubTaskRepo{}, nil)
	if _, err := svc.Create(context.Background(), "u", "   ", nil); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("err = %v, want ErrNameRequired", err)
	}
}

func TestPortfolioServiceUpdateNotFound(t *testing.T) {
	portfolios := &stubPortfolioRepo{
		getByIDFn: func(context.Context, string, string) (dom.Portfolio, error) {
			return dom.Portfolio{}, pgx.ErrNoRows
		},
	}
	svc := NewPortfolioService(portfolios, &stubTaskRepo{}, nil)
	if _, err := svc.Update(context.Background(), "u", "missing", UpdatePortfolioInput{Name: strPtr("x")}); !errors.Is(err, ErrPortfolioNotFound) {
		t.Fatalf("err = %v, want ErrPortfolioNotFound", err)
	}
}

func TestPortfolioServiceUpdatePatchesFields(t *testing.T) {
	portfolios := &stubPortfolioRepo{
		getByIDFn: func(context.Context, string, string) (dom.Portfolio, error) {
			return dom.Portfolio{ID: "p1", UserID: "u", Name: "Old", Description: strPtr("keep")}, nil
		},
		saveFn: func(_ context.Context, p dom.Portfolio) (dom.Portfolio, error) { return p, nil },
	}
	svc := NewPortfolioService(portfolios, &stubTaskRepo{}, nil)

	out, err := svc.Update(context.Background(), "u", "p1", UpdatePortfolioInput{Name: strPtr("  New  ")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Name != "New" {
		t.Errorf("name = %q", out.Name)
	}
	if out.Description == nil || *out.Description != "keep" {
		t.Error("description should be untouched when not patched")
	}
}

func TestPortfolioServiceDeleteTasks(t *testing.T) {
	tasksList := []dom.Task{
		{ID: "t1", UserID: "u", PortfolioID: strPtr("p1")},
		{ID: "t2", UserID: "u", PortfolioID: strPtr("p1")},
		{ID: "t3", UserID: "u", PortfolioID: strPtr("p1")},
	}
	var mu sync.Mutex
	var deleted []string
	tasks := &stubTaskRepo{
		listFn: func(context.Context, repo.ListOptions) ([]dom.Task, error) { return tasksList, nil },
		deleteFn: func(_ context.Context, _ string, id string) error {
			mu.Lock()
			deleted = append(deleted, id)
			mu.Unlock()
			return nil
		},
	}
	svc := NewPortfolioService(&stubPortfolioRepo{}, tasks, nil)

	if err := svc.DeleteTasks(context.Background(), "u", "p1"); err != nil {
		t.Fatalf("DeleteTasks: %v", err)
	}
	sort.Strings(deleted)
	if len(deleted) != 3 || deleted[0] != "t1" || deleted[2] != "t3" {
		t.Errorf("deleted = %v", deleted)
	}
}
