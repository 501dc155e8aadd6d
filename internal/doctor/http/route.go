package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/doctors")

	// === Public Routes ===
	group.GET("", h.List)

	// === Authenticated Routes ===
	// Registered before the :id route so "me" is not parsed as a UUID.
	group.GET("/me", authMiddleware, h.Me)
	group.POST("", authMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)

	group.GET("/:id", h.Get)
}
