// Package httperr defines the typed errors the service layer is allowed to
// surface and the Echo error handler that renders every failure with the
// same JSON envelope:
//
//	{"success": false, "code": <status>, "message": <string>, "errors": {field: reason}}
//
// Handlers and services return these errors instead of writing responses
// themselves; anything that is not an *Error (or an echo.HTTPError raised
// by the framework) is reported as a plain 500 so internals never leak to
// the client.
package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error is an HTTP-mapped failure. Errors carries field-scoped detail for
// business-rule rejections (e.g. {"email": "notFound"}) and is nil for
// errors that have no field to blame.
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// NotFound reports a lookup miss.
func NotFound(msg string) *Error {
	if msg == "" {
		msg = http.StatusText(http.StatusNotFound)
	}
	return &Error{Code: http.StatusNotFound, Message: msg}
}

// Unprocessable reports a business-rule rejection with field detail.
func Unprocessable(fields map[string]string) *Error {
	return &Error{
		Code:    http.StatusUnprocessableEntity,
		Message: http.StatusText(http.StatusUnprocessableEntity),
		Errors:  fields,
	}
}

// Unauthorized reports a missing, invalid or revoked credential.
func Unauthorized() *Error {
	return &Error{Code: http.StatusUnauthorized, Message: http.StatusText(http.StatusUnauthorized)}
}

// Forbidden reports a role check failure.
func Forbidden() *Error {
	return &Error{Code: http.StatusForbidden, Message: http.StatusText(http.StatusForbidden)}
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(msg string) *Error {
	if msg == "" {
		msg = http.StatusText(http.StatusBadRequest)
	}
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

// Internal reports an unexpected failure. The underlying cause is not
// included; callers log it before wrapping.
func Internal() *Error {
	return &Error{Code: http.StatusInternalServerError, Message: "Internal server error"}
}

// envelope is the wire shape produced for every error response.
type envelope struct {
	Success bool              `json:"success"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Handler returns an echo.HTTPErrorHandler rendering the uniform envelope.
func Handler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		env := envelope{Success: false, Code: http.StatusInternalServerError, Message: "Internal server error"}

		var apiErr *Error
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &apiErr):
			env.Code = apiErr.Code
			env.Message = apiErr.Message
			env.Errors = apiErr.Errors
		case errors.As(err, &echoErr):
			// Routing-level errors (404 on unknown paths, 405, bind failures).
			env.Code = echoErr.Code
			if msg, ok := echoErr.Message.(string); ok {
				env.Message = msg
			} else {
				env.Message = http.StatusText(echoErr.Code)
			}
		default:
			log.Printf("unhandled error: %v", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(env.Code)
			return
		}
		_ = c.JSON(env.Code, env)
	}
}
