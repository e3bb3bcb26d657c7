package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware provides mock Bearer token authentication for the engine's
// API. Any non-empty Bearer token is accepted; subscription tier and premium
// gating stay with the identity provider in front of this service. Requests
// whose path starts with one of publicPrefixes bypass authentication.
func AuthMiddleware(publicPrefixes ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		path := c.Path()

		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid Authorization header format, expected 'Bearer <token>'",
			})
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "empty bearer token",
			})
		}

		// Mock validation: accept any non-empty token. A real deployment
		// would verify a session JWT from the identity provider here.
		c.Locals("auth_token", token)

		return c.Next()
	}
}
