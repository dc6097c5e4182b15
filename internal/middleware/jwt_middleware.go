package middleware

import (
	"strings"

	"agrofeira/internal/apperrors"
	"agrofeira/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	localProducerID   = "producer_id"
	localProducerName = "producer_name"
)

// TokenValidator verifies bearer tokens. It is satisfied by services.AuthService.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.Claims, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token. Failures
// are returned as typed errors and rendered by the app's error handler.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperrors.Unauthenticated("authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return apperrors.Unauthenticated("authorization header format must be 'Bearer <token>'")
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(localProducerID, claims.ID)
		c.Locals(localProducerName, claims.Name)

		return c.Next()
	}
}

// ProducerID returns the authenticated producer's id, or "" on public routes.
func ProducerID(c *fiber.Ctx) string {
	id, _ := c.Locals(localProducerID).(string)
	return id
}

// ProducerName returns the authenticated producer's name.
func ProducerName(c *fiber.Ctx) string {
	name, _ := c.Locals(localProducerName).(string)
	return name
}
