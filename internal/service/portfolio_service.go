package service

import (
	"context"
	"errors"
	"strings"

	"propboard/internal/cache"
	dom "propboard/internal/domain"
	"propboard/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// UpdatePortfolioInput is a partial update: nil fields keep their value.
type UpdatePortfolioInput struct {
	Name        *string
	Description *string
}

// PortfolioService orchestrates portfolio CRUD and the grouped
// portfolio-with-tasks view.
type PortfolioService struct {
	portfolios repo.PortfolioRepo
	tasks      repo.TaskRepo
	cache      *cache.TaskCache
	sf         singleflight.Group
}

// NewPortfolioService creates a PortfolioService. If c is nil, caching
// is disabled.
func NewPortfolioService(portfolios repo.PortfolioRepo, tasks repo.TaskRepo, c *cache.TaskCache) *PortfolioService {
	return &PortfolioService{portfolios: portfolios, tasks: tasks, cache: c}
}

// List returns all portfolios for a user, oldest first.
func (s *PortfolioService) List(ctx context.Context, userID string) ([]dom.Portfolio, error) {
	return s.portfolios.List(ctx, repo.ListOptions{
		Filters: []repo.Filter{repo.Eq("user_id", userID)},
		OrderBy: []repo.Order{repo.Asc("created_at")},
	})
}

// ListWithTasks loads the user's portfolios, fetches all their tasks in
// one query, and groups them client-side. Every portfolio appears, even
// with zero tasks.
func (s *PortfolioService) ListWithTasks(ctx context.Context, userID string) ([]dom.PortfolioWithTasks, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("grouped:"+userID, func() (interface{}, error) {
			if list, err := s.cache.GetGrouped(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.listWithTasks(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetGrouped(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.PortfolioWithTasks), nil
	}
	return s.listWithTasks(ctx, userID)
}

func (s *PortfolioService) listWithTasks(ctx context.Context, userID string) ([]dom.PortfolioWithTasks, error) {
	portfolios, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(portfolios) == 0 {
		return []dom.PortfolioWithTasks{}, nil
	}

	ids := make([]string, len(portfolios))
	for i, p := range portfolios {
		ids[i] = p.ID
	}
	tasks, err := s.tasks.List(ctx, repo.ListOptions{
		Filters: []repo.Filter{repo.Eq("user_id", userID), repo.Eq("portfolio_id", ids)},
		OrderBy: []repo.Order{repo.Asc("created_at")},
	})
	if err != nil {
		return nil, err
	}

	byPortfolio := make(map[string][]dom.Task, len(portfolios))
	for _, t := range tasks {
		if t.PortfolioID == nil {
			continue
		}
		byPortfolio[*t.PortfolioID] = append(byPortfolio[*t.PortfolioID], t)
	}

	out := make([]dom.PortfolioWithTasks, len(portfolios))
	for i, p := range portfolios {
		grouped := byPortfolio[p.ID]
		if grouped == nil {
			grouped = []dom.Task{}
		}
		out[i] = dom.PortfolioWithTasks{Portfolio: p, Tasks: grouped}
	}
	return out, nil
}

// Create adds a portfolio for the user.
func (s *PortfolioService) Create(ctx context.Context, userID, name string, description *string) (dom.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Portfolio{}, ErrNameRequired
	}
	p, err := s.portfolios.Save(ctx, dom.Portfolio{
		ID:          dom.NewID(),
		UserID:      userID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return dom.Portfolio{}, err
	}
	s.invalidateCache(ctx, userID)
	return p, nil
}

// Update applies a partial patch; a missing portfolio is an error.
func (s *PortfolioService) Update(ctx context.Context, userID, id string, patch UpdatePortfolioInput) (dom.Portfolio, error) {
	p, err := s.portfolios.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Portfolio{}, ErrPortfolioNotFound
		}
		return dom.Portfolio{}, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return dom.Portfolio{}, ErrNameRequired
		}
		p.Name = name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	out, err := s.portfolios.Save(ctx, p)
	if err != nil {
		return dom.Portfolio{}, err
	}
	s.invalidateCache(ctx, userID)
	return out, nil
}

// Delete removes a portfolio. It does not cascade to tasks; callers that
// want the tasks gone call DeleteTasks first. Deleting a missing
// portfolio is a silent no-op.
func (s *PortfolioService) Delete(ctx context.Context, userID, id string) error {
	if err := s.portfolios.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// DeleteTasks removes every task assigned to the portfolio, one delete
// per task, in parallel.
func (s *PortfolioService) DeleteTasks(ctx context.Context, userID, portfolioID string) error {
	tasks, err := s.tasks.List(ctx, repo.ListOptions{
		Filters: []repo.Filter{repo.Eq("user_id", userID), repo.Eq("portfolio_id", portfolioID)},
	})
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error {
			return s.tasks.Delete(gctx, userID, t.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *PortfolioService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}
