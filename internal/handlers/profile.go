package handlers

import (
	"net/http"
	"time"

	"propboard/internal/auth"
	dom "propboard/internal/domain"
	"propboard/internal/dto"
	"propboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles profile completion and billing address routes.
type ProfileHandler struct {
	svc *service.ProfileService
}

// NewProfileHandler returns a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Completion godoc
// @Summary      Profile completion status
// @Tags         profile
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  service.CompletionStatus
// @Failure      500  {object}  map[string]string
// @Router       /profile/completion [get]
func (h *ProfileHandler) Completion(c *gin.Context) {
	st, err := h.svc.GetCompletionStatus(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// Update godoc
// @Summary      Update profile details
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.UpdateProfileRequest  true  "Profile details"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  map[string]string
// @Router       /profile [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var dob *time.Time
	if req.DateOfBirth != nil {
		dob = req.DateOfBirth.Ptr()
	}
	p, err := h.svc.UpdateDetails(c.Request.Context(), auth.UserIDFromContext(c), req.FullName, dob)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{
		UserID:           p.UserID,
		FullName:         p.FullName,
		DateOfBirth:      p.DateOfBirth,
		TasksCreated:     p.TasksCreated,
		SubscriptionPlan: p.SubscriptionPlan,
		TasksLimit:       p.TasksLimit,
	})
}

// PutBillingAddress godoc
// @Summary      Set the primary billing address
// @Description  Closes the previous primary address and inserts a new one.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.BillingAddressRequest  true  "Address"
// @Success      200   {object}  dto.ProfileAddressResponse
// @Failure      400   {object}  map[string]string
// @Router       /profile/billing-address [put]
func (h *ProfileHandler) PutBillingAddress(c *gin.Context) {
	var req dto.BillingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	link, err := h.svc.UpsertPrimaryBillingAddress(c.Request.Context(), auth.UserIDFromContext(c), dom.Address{
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		Region:     req.Region,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileAddressResponse{
		ID:        link.ID,
		AddressID: link.AddressID,
		Kind:      link.Kind,
		IsPrimary: link.IsPrimary,
		ValidFrom: link.ValidFrom,
		ValidTo:   link.ValidTo,
	})
}
