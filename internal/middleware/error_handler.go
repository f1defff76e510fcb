package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/insynpulse/internal/domain/dto"
	"github.com/guttosm/insynpulse/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON error response
// when the handler did not write one itself.
//
// A dto.ErrorResponse in the chain is returned as-is; anything else becomes a
// 500 Internal Server Error.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last().Err
	rid := requestID(c)
	log := logger.For("http")
	log.Error().Err(last).Str("request_id", rid).Str("path", c.Request.URL.Path).Msg("request failed")

	var resp dto.ErrorResponse
	if errors.As(last, &resp) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp.WithRequestID(rid))
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last).WithRequestID(rid))
}

// AbortWithError stops the chain and writes a standardized JSON error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err).WithRequestID(requestID(c)))
}
