package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-booking-backend/internal/auth"
	"github.com/clinicdesk/clinic-booking-backend/internal/availability"
	"github.com/clinicdesk/clinic-booking-backend/internal/doctor"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/clock"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/response"
	"github.com/clinicdesk/clinic-booking-backend/internal/user"
)

type Handler struct {
	service    availability.Service
	docService doctor.Service
}

func NewHandler(service availability.Service, docService doctor.Service) *Handler {
	return &Handler{
		service:    service,
		docService: docService,
	}
}

// List returns a doctor's availability windows. Public, so patients can see
// bookable hours before requesting a slot.
func (h *Handler) List(c *gin.Context) {
	var req ListWindowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Normalize()

	filter := availability.Filter{
		DoctorID: req.DoctorID,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	windows, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list availability"})
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Create declares a new window for the authenticated doctor.
func (h *Handler) Create(c *gin.Context) {
	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	// The window belongs to the caller's own doctor profile.
	d, err := h.docService.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "doctor profile required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve doctor profile"})
		return
	}

	w, err := h.service.Create(c.Request.Context(), availability.CreateRequest{
		DoctorID:  d.ID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, clock.ErrInvalidClock),
			errors.Is(err, availability.ErrInvalidTimeRange),
			errors.Is(err, availability.ErrPastDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, availability.ErrWindowOverlap):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create availability window"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewWindowResponse(w))
}

// Delete removes a window (owning doctor or admin). Windows are immutable,
// so edits are delete-and-recreate.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)

	var ownerDoctorID string
	if !isAdmin {
		d, err := h.docService.GetByUserID(c.Request.Context(), auth.GetUserID(c))
		if err != nil {
			if errors.Is(err, doctor.ErrNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"error": "doctor profile required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve doctor profile"})
			return
		}
		ownerDoctorID = d.ID
	}

	err := h.service.Delete(c.Request.Context(), id, ownerDoctorID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "availability window not found"})
		case errors.Is(err, availability.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete availability window"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
