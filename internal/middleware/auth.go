package middleware

import (
	"coachpro_backend/internal/config"
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects callers without a valid token. Unauthenticated
// requests are always a 401, never silently downgraded to read-only.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// CapabilityMiddleware gates a route group on one capability. Capabilities
// are independent grants resolved from the caller's role, not a hierarchy.
func CapabilityMiddleware(cap model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if !claims.Can(cap) {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastLogin(userID uint) error
}

// ActivityMiddleware records caller activity without blocking the request.
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			go repo.UpdateLastLogin(claims.UserID)
		}
		c.Next()
	}
}
