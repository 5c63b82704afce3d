package handler

import (
	"errors"
	"io"
	"net/http"

	"notesapi/logging"
	"notesapi/middleware"
	"notesapi/usecase"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

// errorResponder maps usecase errors onto status codes. Anything it does
// not recognise is logged and reported as a generic 500.
type errorResponder struct {
	log           logging.Logger
	exposeDetails bool
}

func (r errorResponder) respond(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &verr):
		utils.TrackError("validation", "invalid_input")
		utils.BadRequest(c, verr.Message, verr.Details...)
	case errors.Is(err, usecase.ErrDuplicateUser):
		utils.TrackError("validation", "duplicate_user")
		utils.BadRequest(c, "Username or email already exists")
	case errors.Is(err, usecase.ErrInvalidNoteID):
		utils.TrackError("validation", "invalid_id")
		utils.BadRequest(c, "Invalid note ID")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.TrackError("auth", "invalid_credentials")
		utils.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, usecase.ErrUserNotFound):
		utils.NotFound(c, "User not found")
	case errors.Is(err, usecase.ErrNoteNotFound):
		utils.NotFound(c, "Note not found")
	case errors.As(err, &tooLarge):
		utils.RequestTooLarge(c, "Request body too large")
	default:
		utils.TrackError("internal", "unhandled")
		r.log.Error(c.Request.Context(), "request failed",
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(middleware.RequestIDKey),
		)
		if r.exposeDetails {
			utils.InternalError(c, "Internal server error", err.Error())
			return
		}
		utils.InternalError(c, "Internal server error")
	}
}

// bind decodes a JSON body into dst. An empty body leaves dst zeroed so
// field validation reports what is missing.
func (r errorResponder) bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.RequestTooLarge(c, "Request body too large")
		return false
	}
	utils.BadRequest(c, "Invalid request body")
	return false
}
