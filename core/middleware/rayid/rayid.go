// Package rayid provides request tracing middleware for Fiber.
//
// Every incoming request gets a unique RayID, stored in the request locals
// and echoed in the X-Ray-ID response header so clients can report it.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header carrying the ray id on requests and responses.
const HeaderName = "X-Ray-ID"

// New creates the ray id middleware. An id supplied by the caller is kept,
// so upstream proxies can propagate their own trace ids.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
