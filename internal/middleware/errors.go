package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/botjournal/internal/domain/dto"
)

// ErrorHandler writes a 500 ErrorResponse for handlers that attached errors
// with c.Error but did not write a response themselves.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", c.Errors.Last().Err))
}

// AbortWithError records err on the context, for RequestLogger, and aborts
// with an ErrorResponse carrying status and message.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
