package middleware

import (
	"net/http"
	"strings"

	"winetrail/models"
	"winetrail/utils"

	"github.com/gin-gonic/gin"
)

const (
	callerKey   = "caller"
	tokenCookie = "token"
)

// IdentityMiddleware resolves the bearer token (or the "token" cookie) into a caller.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Insufficient authorization"})
			return
		}

		caller, err := utils.ParseCaller(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid token"})
			return
		}

		c.Set(callerKey, caller)
		c.Set("userID", caller.UserID)
		c.Set("role", string(caller.Role))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return cookie
	}
	return ""
}

// CallerFrom returns the caller set by IdentityMiddleware.
func CallerFrom(c *gin.Context) (models.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok && caller.UserID != ""
}

// SetCaller stores a caller on the context. Used by tests and internal routes.
func SetCaller(c *gin.Context, caller models.Caller) {
	c.Set(callerKey, caller)
	c.Set("userID", caller.UserID)
	c.Set("role", string(caller.Role))
}
