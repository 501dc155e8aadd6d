package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-booking-backend/internal/auth"
	"github.com/clinicdesk/clinic-booking-backend/internal/user"
)

// RequireAdmin ensures the authenticated user has the admin role.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(user.RoleAdmin)
}

// RequireDoctor ensures the authenticated user has the doctor role.
// It MUST be used after auth.AuthRequired middleware.
func RequireDoctor() gin.HandlerFunc {
	return requireRole(user.RoleDoctor)
}

func requireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if auth.GetUserRole(c) != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: " + string(role) + " access required"})
			return
		}
		c.Next()
	}
}
