package api

import (
	"errors"
	"net/http"

	"github.com/thenoetrevino/tasktrack/internal/services/task"
)

// Request errors
var (
	errMalformedJSON = errors.New("malformed JSON body")
	errBodyTooLarge  = errors.New("request body too large")
	errInvalidLimit  = errors.New("limit must be an integer between 1 and 1000")
	errInvalidOffset = errors.New("offset must be a non-negative integer")
)

// statusFor maps an error from any layer onto an HTTP status code
func statusFor(err error) int {
	var ve *ValidationError
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &ve),
		errors.Is(err, errMalformedJSON),
		errors.Is(err, errInvalidLimit),
		errors.Is(err, errInvalidOffset),
		errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrTitleTooLong),
		errors.Is(err, task.ErrInvalidTaskID),
		errors.Is(err, task.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
