package middleware

import (
	"errors"
	"log"
	"strings"

	"socialhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("Authorization header is required")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", errors.New("Authorization header format must be 'Bearer <token>'")
	}
	return parts[1], nil
}

// AuthRequired is a Fiber middleware that checks for a valid access token.
// The token's subject is stored in the request context as "user_id"; identity
// is never taken from client-supplied fields.
func AuthRequired(tokens *services.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := BearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		subject, err := tokens.Verify(tokenString, services.TokenAccess)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals("user_id", subject)

		return c.Next()
	}
}
