package middleware

import (
	"net/http"
	"slices"

	"starpro_store/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware allows the request through when the session role is one of
// allowedRoles. SessionMiddleware must run first.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Session not found, ensure session middleware runs first"})
			return
		}

		if !slices.Contains(allowedRoles, sess.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "You do not have permission to access this resource",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}

// OwnerMiddleware checks if the session belongs to the shop owner
func OwnerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleOwner)
}
