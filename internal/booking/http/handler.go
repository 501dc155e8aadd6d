package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-booking-backend/internal/auth"
	"github.com/clinicdesk/clinic-booking-backend/internal/booking"
	"github.com/clinicdesk/clinic-booking-backend/internal/doctor"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/response"
	"github.com/clinicdesk/clinic-booking-backend/internal/user"
)

type Handler struct {
	service    booking.Service
	docService doctor.Service
}

func NewHandler(service booking.Service, docService doctor.Service) *Handler {
	return &Handler{
		service:    service,
		docService: docService,
	}
}

// Create books a slot for the authenticated patient.
func (h *Handler) Create(c *gin.Context) {
	if auth.GetUserRole(c) != string(user.RolePatient) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only patients can create bookings"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		PatientID:       auth.GetUserID(c),
		DoctorID:        req.DoctorID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Get returns one booking. Only its participants and admins may see it.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)
	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c), isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns bookings scoped to the caller: patients see their own, doctors
// see their practice's, admins see everything and may filter freely.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := booking.Filter{
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if req.DateFrom != "" {
		from, err := time.ParseInLocation("2006-01-02", req.DateFrom, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_from, expected YYYY-MM-DD"})
			return
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.ParseInLocation("2006-01-02", req.DateTo, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_to, expected YYYY-MM-DD"})
			return
		}
		filter.DateTo = &to
	}

	switch auth.GetUserRole(c) {
	case string(user.RoleAdmin):
		filter.DoctorID = req.DoctorID
		filter.PatientID = req.PatientID
	case string(user.RoleDoctor):
		d, err := h.docService.GetByUserID(c.Request.Context(), auth.GetUserID(c))
		if err != nil {
			if errors.Is(err, doctor.ErrNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"error": "doctor profile required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve doctor profile"})
			return
		}
		filter.DoctorID = d.ID
	default:
		filter.PatientID = auth.GetUserID(c)
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(list))
	for i, b := range list {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// UpdateStatus accepts, rejects, or cancels a booking.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)
	b, err := h.service.UpdateStatus(c.Request.Context(), id, booking.Status(req.Status), auth.GetUserID(c), isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
