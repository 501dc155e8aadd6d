package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-booking-backend/internal/auth"
	"github.com/clinicdesk/clinic-booking-backend/internal/doctor"
	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/response"
	"github.com/clinicdesk/clinic-booking-backend/internal/user"
)

type Handler struct {
	service doctor.Service
}

func NewHandler(service doctor.Service) *Handler {
	return &Handler{service: service}
}

// List returns active doctor profiles matching the filter. Public.
func (h *Handler) List(c *gin.Context) {
	var req ListDoctorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	sortBy := req.SortBy
	if sortBy == "full_name" {
		sortBy = "u.full_name"
	} else if sortBy != "" {
		sortBy = "d." + sortBy
	}

	filter := doctor.Filter{
		SpecialtyID: req.SpecialtyID,
		Keyword:     req.Keyword,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      sortBy,
		SortOrder:   strings.ToUpper(req.SortOrder),
	}

	doctors, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list doctors"})
		return
	}

	items := make([]DoctorResponse, len(doctors))
	for i, d := range doctors {
		items[i] = NewResponse(d)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns a single doctor profile. Public.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get doctor"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(d))
}

// Create sets up the doctor profile for the authenticated doctor user.
func (h *Handler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	d, err := h.service.Create(c.Request.Context(), doctor.CreateRequest{
		UserID:        userID,
		SpecialtyID:   req.SpecialtyID,
		Title:         req.Title,
		Bio:           req.Bio,
		ClinicAddress: req.ClinicAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, doctor.ErrNotDoctorRole):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, doctor.ErrProfileExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, doctor.ErrInvalidSpecialty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create doctor profile"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(d))
}

// Me returns the authenticated doctor's own profile.
func (h *Handler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	d, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get doctor profile"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(d))
}

// Update modifies a doctor profile (owner or admin).
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)
	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)

	d, err := h.service.Update(c.Request.Context(), id, doctor.UpdateRequest{
		SpecialtyID:   req.SpecialtyID,
		Title:         req.Title,
		Bio:           req.Bio,
		ClinicAddress: req.ClinicAddress,
	}, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, doctor.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		case errors.Is(err, doctor.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, doctor.ErrInvalidSpecialty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update doctor"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(d))
}
