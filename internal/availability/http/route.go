package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/availability")

	// === Public Routes ===
	group.GET("", h.List)

	// === Authenticated Routes (doctor) ===
	group.POST("", authMiddleware, h.Create)
	group.DELETE("/:id", authMiddleware, h.Delete)
}
