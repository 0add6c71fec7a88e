package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RequestIDHeader   = "X-Request-ID"
	RequestIDLocalKey = "request_id"
)

// Inbound ids end up in logs and error bodies, so only short token-like values are trusted.
var inboundRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// RequestID stores the caller's X-Request-ID in locals and echoes it on the response.
// A missing or malformed header is replaced with a fresh UUID.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if !inboundRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}
