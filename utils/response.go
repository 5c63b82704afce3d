package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error aborts the chain and writes an ErrorResponse.
func Error(c *gin.Context, status int, message string, details ...string) {
	c.AbortWithStatusJSON(status, &ErrorResponse{
		Error:   message,
		Details: details,
	})
}

func BadRequest(c *gin.Context, message string, details ...string) {
	Error(c, http.StatusBadRequest, message, details...)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

func RequestTooLarge(c *gin.Context, message string) {
	Error(c, http.StatusRequestEntityTooLarge, message)
}

func InternalError(c *gin.Context, message string, details ...string) {
	Error(c, http.StatusInternalServerError, message, details...)
}
