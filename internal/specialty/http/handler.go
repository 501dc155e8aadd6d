package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-booking-backend/internal/pkg/response"
	"github.com/clinicdesk/clinic-booking-backend/internal/specialty"
)

type Handler struct {
	service specialty.Service
}

func NewHandler(service specialty.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListSpecialtiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := specialty.Filter{
		Keyword:   req.Keyword,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list specialties"})
		return
	}

	items := make([]SpecialtyResponse, len(list))
	for i, sp := range list {
		items[i] = NewResponse(sp)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	sp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, specialty.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "specialty not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get specialty"})
		return
	}

	c.JSON(http.StatusOK, NewResponse(sp))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	sp, err := h.service.Create(c.Request.Context(), specialty.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, specialty.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, specialty.ErrNameAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create specialty"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(sp))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sp, err := h.service.Update(c.Request.Context(), id, specialty.UpdateRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, specialty.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "specialty not found"})
		case errors.Is(err, specialty.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, specialty.ErrNameAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update specialty"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(sp))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, specialty.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "specialty not found"})
		case errors.Is(err, specialty.ErrInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete specialty"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
