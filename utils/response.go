package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is what the renderer shows as a blocking alert.
type ErrorResponse struct {
	Error string `json:"error"`
	Alert bool   `json:"alert"`
	Route string `json:"route,omitempty"`
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Alert: true})
}

// RespondWithRedirect is used when the session is gone and the renderer has
// to move to another route after showing the alert.
func RespondWithRedirect(c *gin.Context, status int, message, route string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Alert: true, Route: route})
}

// ErrorHandler recovers handler panics and answers with a generic alert.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}()
		c.Next()
	}
}
