package domain

import "time"

// Portfolio groups tasks for one property portfolio.
// Не зависит от Gin, Postgres, Redis.
type Portfolio struct {
	ID          string
	UserID      string
	Name        string
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PortfolioWithTasks pairs a portfolio with the tasks assigned to it.
type PortfolioWithTasks struct {
	Portfolio Portfolio
	Tasks     []Task
}
