package response

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestContextKey = "request_context"

// RequestContext is the per-request state the envelope builders read.
// It is created once at the start of a request and attached to it.
type RequestContext struct {
	ID    string
	Start time.Time
}

// NewRequestID returns a 32 character hex identifier
func NewRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Attach stores rc on the request
func Attach(c *fiber.Ctx, rc *RequestContext) {
	c.Locals(requestContextKey, rc)
}

// FromContext returns the request's context. Requests that never passed the
// request meta middleware get a fresh one so envelopes are always complete.
func FromContext(c *fiber.Ctx) *RequestContext {
	if rc, ok := c.Locals(requestContextKey).(*RequestContext); ok && rc != nil {
		return rc
	}
	rc := &RequestContext{ID: NewRequestID(), Start: time.Now()}
	Attach(c, rc)
	return rc
}
