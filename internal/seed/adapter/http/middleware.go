package http

import (
	"strings"

	"techquiz-server/internal/seed/domain/repository"
	"techquiz-server/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localsRequestID = "request_id"
	localsSubject   = "subject"
)

// AdminMiddleware guards the admin routes
type AdminMiddleware struct {
	tokens repository.TokenService
}

// NewAdminMiddleware creates a new admin middleware
func NewAdminMiddleware(tokens repository.TokenService) *AdminMiddleware {
	return &AdminMiddleware{tokens: tokens}
}

// RequestID propagates X-Request-ID, generating one when absent
func (m *AdminMiddleware) RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, rid)
		c.Locals(localsRequestID, rid)
		c.SetUserContext(utils.WithRequestID(c.UserContext(), rid))
		return c.Next()
	}
}

// SecurityHeaders adds security headers
func (m *AdminMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "no-referrer")
		return c.Next()
	}
}

// Protect requires a valid admin bearer token
func (m *AdminMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := extractBearer(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		claims, err := m.tokens.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(localsSubject, claims.Subject)
		c.SetUserContext(utils.WithSubject(c.UserContext(), claims.Subject))
		return c.Next()
	}
}

func extractBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// GetSubject returns the authenticated admin subject
func GetSubject(c *fiber.Ctx) (string, bool) {
	subject, ok := c.Locals(localsSubject).(string)
	return subject, ok
}

// GetRequestID returns the request id set by RequestID
func GetRequestID(c *fiber.Ctx) (string, bool) {
	rid, ok := c.Locals(localsRequestID).(string)
	return rid, ok
}
