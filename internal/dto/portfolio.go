package dto

import "time"

type CreatePortfolioRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type UpdatePortfolioRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type PortfolioResponse struct {
	ID          string    `json:"portfolio_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListPortfoliosResponse struct {
	Items []PortfolioResponse `json:"items"`
}

type PortfolioWithTasksResponse struct {
	Portfolio PortfolioResponse `json:"portfolio"`
	Tasks     []TaskResponse    `json:"tasks"`
}

type ListPortfoliosWithTasksResponse struct {
	Items []PortfolioWithTasksResponse `json:"items"`
}
