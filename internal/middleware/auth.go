package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/oshxona/internal/config"
	"github.com/example/oshxona/internal/utils"
)

const roleContextKey = "currentRole"

// AuthMiddleware validates JWT tokens and loads the authenticated role
// into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		role, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil || role != "admin" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(roleContextKey, role)
		return c.Next()
	}
}
