// Package middleware holds the gin handlers shared by every route: request
// setup, logging, error rendering and request validation.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/holycityautospa/booking-hub/internal/schema"
)

// HandleError writes the uniform error envelope and logs the cause. The
// error kind in the body comes from the wrapped schema.Error when there is
// one, INTERNAL_ERROR otherwise.
func HandleError(c *gin.Context, status int, message string, err error) {
	logger, exists := c.Get("logger")
	if exists {
		logger.(*zerolog.Logger).
			Err(err).
			Int("code", status).
			Msg(message)
	}

	response := schema.ErrorResponse{
		Success: false,
		Error: schema.ResponseError{
			Code:    schema.KindOf(err),
			Message: message,
		},
	}

	c.AbortWithStatusJSON(status, response)
}
