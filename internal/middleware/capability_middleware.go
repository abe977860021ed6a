package middleware

import (
	"net/http"

	"github.com/Gpober/pdsLogix-sub001/internal/domain"
	"github.com/Gpober/pdsLogix-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireCapability authorizes the request against the closed role enum.
// Must run after AuthMiddleware.
func RequireCapability(cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		role, ok := domain.ParseRole(roleValue.(string))
		if !ok || !role.Can(cap) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to perform this action", string(cap))
			c.Abort()
			return
		}

		c.Next()
	}
}
