package dto

import "time"

type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	PortfolioID *string   `json:"portfolio_id"`
	DueDate     FlexDate  `json:"due_date"` // optional: "2026-02-19" or RFC3339
	Priority    *string   `json:"priority" binding:"omitempty,oneof=urgent high medium low"`
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Completed   *bool     `json:"completed"`
	Status      *string   `json:"status" binding:"omitempty,oneof=todo done"`
	Label       *string   `json:"label"`
	Priority    *string   `json:"priority" binding:"omitempty,oneof=urgent high medium low"`
	DueDate     *FlexDate `json:"due_date"` // nil = не менять, значение = поставить
	PortfolioID *string   `json:"portfolio_id"` // "" unassigns
}

type TaskResponse struct {
	ID          string     `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Status      string     `json:"status"`
	Label       string     `json:"label"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	ImageURL    *string    `json:"image_url,omitempty"`
	PortfolioID *string    `json:"portfolio_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}

type TaskImageResponse struct {
	ID        string    `json:"image_id"`
	TaskID    string    `json:"task_id"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type ListTaskImagesResponse struct {
	Items []TaskImageResponse `json:"items"`
}
