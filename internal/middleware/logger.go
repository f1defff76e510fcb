package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/insynpulse/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available).
//
// Behavior:
//   - Captures start time before request handling.
//   - After request is processed, calculates latency.
//   - Logs method, path, status, latency in ms, and request_id (if injected by RequestID()).
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	component=http request_id=123e4567-e89b-12d3-a456-426614174000 method=GET path=/api/v1/transactions status=200 latency_ms=15
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		// Process request
		c.Next()

		// Compute latency and get status
		latency := time.Since(start)
		status := c.Writer.Status()

		log := logger.For("http")
		log.Info().
			Str("request_id", requestID(c)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Int("errors", len(c.Errors)).
			Msg("http_request")
	}
}

// requestID returns the id stored by RequestID(), or "" when that middleware
// did not run.
func requestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
