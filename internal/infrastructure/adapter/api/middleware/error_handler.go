package middleware

import (
	"net/http"
	"runtime/debug"

	domainerr "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from handler panics and answers with the uniform
// error body instead of an empty reply
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":     r,
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
					"stack":     string(debug.Stack()),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
