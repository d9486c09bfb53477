package middleware

import (
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/utils/response"
)

// RequestIDLocalsKey is where the requestid middleware leaves the id
const RequestIDLocalsKey = "requestid"

var requestIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// RequestMeta attaches the per-request context read by the envelope
// builders. It reuses the id assigned by the requestid middleware when it is
// a 32 character hex string and replaces anything else a client sent.
func RequestMeta() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals(RequestIDLocalsKey).(string)
		if !requestIDPattern.MatchString(id) {
			id = response.NewRequestID()
			c.Locals(RequestIDLocalsKey, id)
			c.Set(fiber.HeaderXRequestID, id)
		}

		response.Attach(c, &response.RequestContext{
			ID:    id,
			Start: time.Now(),
		})

		return c.Next()
	}
}
