package response

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	// TimestampLayout is ISO-8601 in UTC with a literal Z suffix
	TimestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Meta is attached to every envelope
type Meta struct {
	RequestID        string `json:"requestId"`
	Timestamp        string `json:"timestamp"`
	ProcessingTimeMs *int64 `json:"processingTimeMs,omitempty"`
}

// Response represents a standardized successful API response
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
	Meta   Meta        `json:"meta"`
}

// ErrorResponse represents a standardized failed API response
type ErrorResponse struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
	Meta   Meta        `json:"meta"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func buildMeta(c *fiber.Ctx, withTiming bool) Meta {
	rc := FromContext(c)
	now := time.Now()
	meta := Meta{
		RequestID: rc.ID,
		Timestamp: now.UTC().Format(TimestampLayout),
	}
	if withTiming {
		elapsed := now.Sub(rc.Start).Milliseconds()
		meta.ProcessingTimeMs = &elapsed
	}
	return meta
}

// JSON writes a success envelope with the given status code
func JSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(statusCode).JSON(Response{
		Status: StatusSuccess,
		Data:   data,
		Meta:   buildMeta(c, true),
	})
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return JSON(c, fiber.StatusOK, data)
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, data interface{}) error {
	return JSON(c, fiber.StatusCreated, data)
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, code string, message string) error {
	return ErrorWithDetails(c, statusCode, code, message, nil)
}

// ErrorWithDetails returns an error response with details
func ErrorWithDetails(c *fiber.Ctx, statusCode int, code string, message string, details interface{}) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Status: StatusError,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: buildMeta(c, false),
	})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusBadRequest, code, message)
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, code string, message string) error {
	if message == "" {
		message = "Unauthorized access"
	}
	return Error(c, fiber.StatusUnauthorized, code, message)
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, code string, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, code, message)
}

// Conflict returns a 409 Conflict response
func Conflict(c *fiber.Ctx, code string, message string) error {
	return Error(c, fiber.StatusConflict, code, message)
}

// ValidationError returns a 400 response carrying per-field messages
func ValidationError(c *fiber.Ctx, fields interface{}) error {
	return ErrorWithDetails(c, fiber.StatusBadRequest, CodeValidationError, "Validation failed", fields)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string, err error) error {
	if message == "" {
		message = "Internal server error"
	}
	var details interface{}
	if err != nil {
		details = err.Error()
	}
	return ErrorWithDetails(c, fiber.StatusInternalServerError, CodeInternalError, message, details)
}

// ServiceUnavailable returns a 503 Service Unavailable response
func ServiceUnavailable(c *fiber.Ctx, message string, details interface{}) error {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	return ErrorWithDetails(c, fiber.StatusServiceUnavailable, CodeServiceUnavailable, message, details)
}
