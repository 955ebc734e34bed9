package apperrors

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Error is the application error carried from services and controllers to
// the single response boundary.
type Error struct {
	Status  int      `json:"statusCode"`
	Message string   `json:"message"`
	Errs    []string `json:"errors"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message, Errs: []string{}}
}

func BadRequest(message string) *Error {
	return New(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(fiber.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(fiber.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(fiber.StatusConflict, message)
}

func Internal(message string) *Error {
	return New(fiber.StatusInternalServerError, message)
}

type errorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
	Stack      string   `json:"stack,omitempty"`
}

// Handler converts any error escaping a handler into the wire envelope.
// Unknown errors surface as generic 500s; stack traces are attached only
// outside production.
func Handler(production bool) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		envelope := errorEnvelope{
			StatusCode: fiber.StatusInternalServerError,
			Message:    "Internal server error",
			Success:    false,
			Errors:     []string{},
		}

		var appErr *Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			envelope.StatusCode = appErr.Status
			envelope.Message = appErr.Message
			envelope.Errors = appErr.Errs
		case errors.As(err, &fiberErr):
			envelope.StatusCode = fiberErr.Code
			envelope.Message = fiberErr.Message
		default:
			logrus.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}

		if !production && envelope.StatusCode >= fiber.StatusInternalServerError {
			envelope.Stack = string(debug.Stack())
		}

		return c.Status(envelope.StatusCode).JSON(envelope)
	}
}
