package handlers

import (
	"errors"
	"net/http"

	"propboard/internal/auth"
	dom "propboard/internal/domain"
	"propboard/internal/dto"
	"propboard/internal/service"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	svc *service.PortfolioService
}

func NewPortfolioHandler(svc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

// List godoc
// @Summary      List portfolios
// @Tags         portfolios
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListPortfoliosResponse
// @Failure      500  {object}  map[string]string
// @Router       /portfolios [get]
func (h *PortfolioHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	items := make([]dto.PortfolioResponse, len(list))
	for i, p := range list {
		items[i] = portfolioToResponse(p)
	}
	c.JSON(http.StatusOK, dto.ListPortfoliosResponse{Items: items})
}

// ListWithTasks godoc
// @Summary      List portfolios with their tasks
// @Tags         portfolios
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListPortfoliosWithTasksResponse
// @Failure      500  {object}  map[string]string
// @Router       /portfolios/with-tasks [get]
func (h *PortfolioHandler) ListWithTasks(c *gin.Context) {
	list, err := h.svc.ListWithTasks(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	items := make([]dto.PortfolioWithTasksResponse, len(list))
	for i, pt := range list {
		items[i] = dto.PortfolioWithTasksResponse{
			Portfolio: portfolioToResponse(pt.Portfolio),
			Tasks:     tasksToResponses(pt.Tasks),
		}
	}
	c.JSON(http.StatusOK, dto.ListPortfoliosWithTasksResponse{Items: items})
}

// Create godoc
// @Summary      Create a portfolio
// @Tags         portfolios
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreatePortfolioRequest  true  "Portfolio body"
// @Success      201   {object}  dto.PortfolioResponse
// @Failure      400   {object}  map[string]string
// @Router       /portfolios [post]
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req dto.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, portfolioToResponse(p))
}

// Update godoc
// @Summary      Update a portfolio
// @Tags         portfolios
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Portfolio ID"
// @Param        body  body      dto.UpdatePortfolioRequest  true  "Partial update"
// @Success      200   {object}  dto.PortfolioResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /portfolios/{id} [patch]
func (h *PortfolioHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, service.UpdatePortfolioInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPortfolioNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, portfolioToResponse(p))
}

// Delete godoc
// @Summary      Delete a portfolio
// @Description  Does not delete the portfolio's tasks; call DELETE /portfolios/{id}/tasks first if wanted.
// @Tags         portfolios
// @Security     CookieAuth
// @Param        id   path  string  true  "Portfolio ID"
// @Success      204
// @Failure      500  {object}  map[string]string
// @Router       /portfolios/{id} [delete]
func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTasks godoc
// @Summary      Delete all tasks in a portfolio
// @Tags         portfolios
// @Security     CookieAuth
// @Param        id   path  string  true  "Portfolio ID"
// @Success      204
// @Failure      500  {object}  map[string]string
// @Router       /portfolios/{id}/tasks [delete]
func (h *PortfolioHandler) DeleteTasks(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteTasks(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func portfolioToResponse(p dom.Portfolio) dto.PortfolioResponse {
	return dto.PortfolioResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
