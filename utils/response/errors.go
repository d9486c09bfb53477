package response

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// APIError is an error that already knows how it should be rendered
type APIError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// NewAPIError builds an APIError without details
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// ErrorHandler is the application wide fiber error handler. Every error that
// escapes a handler, including recovered panics, leaves as an error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return ErrorWithDetails(c, apiErr.Status, apiErr.Code, apiErr.Message, apiErr.Details)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return Error(c, fiberErr.Code, CodeNotFound, fiberErr.Message)
		case fiber.StatusMethodNotAllowed:
			return Error(c, fiberErr.Code, CodeMethodNotAllowed, fiberErr.Message)
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return Error(c, fiberErr.Code, fmt.Sprintf("HTTP_%d", fiberErr.Code), fiberErr.Message)
		}
	}

	slog.Error("unhandled error",
		"request_id", FromContext(c).ID,
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return InternalServerError(c, "", err)
}
