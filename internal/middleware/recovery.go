package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/insynpulse/internal/domain/dto"
	"github.com/guttosm/insynpulse/internal/logger"
)

// RecoveryMiddleware recovers from panics in later handlers, logs the value
// and stack under the "http" component, and answers 500 with a
// dto.ErrorResponse carrying the request id so the client can quote it.
//
// Register it after RequestID() so the id is already on the context:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid := requestID(c)
			log := logger.For("http")
			log.Error().
				Str("request_id", rid).
				Str("path", c.Request.URL.Path).
				Str("panic", fmt.Sprintf("%v", r)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			resp := dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r)).WithRequestID(rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		}()

		c.Next()
	}
}
