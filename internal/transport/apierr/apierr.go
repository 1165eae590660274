// Package apierr maps domain errors onto HTTP status codes for the REST and
// websocket transports.
package apierr

import (
	"errors"
	"net/http"

	"vibeform/internal/authoring"
	"vibeform/internal/fill"
	"vibeform/internal/log"
	"vibeform/internal/model"
	"vibeform/internal/service"
)

var statuses = []struct {
	err    error
	status int
}{
	{service.ErrFormChanged, http.StatusGone},

	{authoring.ErrTitleRequired, http.StatusBadRequest},
	{authoring.ErrIndexOutOfRange, http.StatusBadRequest},
	{fill.ErrAnswerShape, http.StatusBadRequest},
	{fill.ErrInvalidOption, http.StatusBadRequest},
	{service.ErrInvalidResponse, http.StatusBadRequest},
	{service.ErrBadCredentials, http.StatusBadRequest},
	{service.ErrUnknownEvent, http.StatusBadRequest},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},

	{service.ErrFormNotFound, http.StatusNotFound},
	{service.ErrResponseNotFound, http.StatusNotFound},
	{service.ErrSessionNotFound, http.StatusNotFound},
	{fill.ErrUnknownQuestion, http.StatusNotFound},

	{service.ErrEmailTaken, http.StatusConflict},
	{fill.ErrSubmissionPending, http.StatusConflict},
	{fill.ErrSessionClosed, http.StatusConflict},

	{fill.ErrEmptyForm, http.StatusUnprocessableEntity},
	{service.ErrSubmissionFailed, http.StatusBadGateway},
}

// Status returns the HTTP status for err. Unknown errors are 500.
func Status(err error) int {
	var shapeErrs model.ShapeErrors
	var shapeErr *model.ShapeError
	if errors.As(err, &shapeErrs) || errors.As(err, &shapeErr) {
		return http.StatusBadRequest
	}
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// Describe returns the status and the client-facing message for err. The
// detail of internal errors is logged and never sent to the client.
func Describe(err error) (int, string) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Errorf("internal error: %v", err)
		return status, "internal server error"
	}
	return status, err.Error()
}
