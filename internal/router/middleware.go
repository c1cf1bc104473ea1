package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/pkg/global"
)

const principalKey = "principal"

// RequestID tags every request, honoring an id supplied by a proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  latency.Milliseconds(),
			"request_id":  c.Writer.Header().Get("X-Request-ID"),
		})

		switch {
		case statusCode >= 500:
			entry.Error("request completed with server error")
		case statusCode >= 400:
			entry.Warn("request completed with client error")
		default:
			entry.Info("request completed")
		}
	}
}

// Authenticate parses a bearer token when one is present and stores the
// principal on the context. Requests without a token pass through anonymous;
// a malformed or expired token is rejected outright.
func (a *API) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, global.ErrorResponse("Invalid Authorization header format", nil))
			return
		}

		principal, err := a.Tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func (a *API) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principalFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, global.ErrorResponse("Authentication required", nil))
			return
		}
		c.Next()
	}
}

// principalFrom returns the authenticated principal, or nil for anonymous
// callers.
func principalFrom(c *gin.Context) *auth.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*auth.Principal)
	if !ok {
		return nil
	}
	return principal
}
