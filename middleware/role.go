package middleware

import (
	"net/http"

	"winetrail/models"
	"winetrail/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose role is not listed. It must run after IdentityMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Insufficient authorization"})
			return
		}
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
			Message: "Forbidden",
			Details: "role " + string(caller.Role) + " cannot access this resource",
		})
	}
}
