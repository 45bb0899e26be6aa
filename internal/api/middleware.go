package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/auth"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// RequestIDMiddleware tags every request with an id for log correlation
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = types.GenerateUUID()
		}
		ctx := context.WithValue(c.Request.Context(), types.CtxRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// AuthMiddleware verifies the bearer token and seeds the request context
// with the caller's identity
func AuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			// Websocket clients cannot set headers from the browser
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		ctx := c.Request.Context()
		ctx = types.SetUserID(ctx, claims.UserID)
		ctx = types.SetUserRole(ctx, claims.Role)
		if claims.TenantID != "" {
			ctx = types.SetTenantID(ctx, claims.TenantID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CronAuthMiddleware guards the scheduled job routes with a static key
func CronAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "cron jobs are not configured"})
			return
		}
		if c.GetHeader("X-API-Key") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}

		// Jobs run platform-wide with a synthetic identity
		ctx := c.Request.Context()
		ctx = types.SetTenantID(ctx, types.DefaultTenantID)
		ctx = types.SetUserID(ctx, types.DefaultUserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
