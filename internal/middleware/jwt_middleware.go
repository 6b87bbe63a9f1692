package middleware

import (
	"strings"

	"warung/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		if err := authenticate(c, authService, tokenString); err != nil {
			log.Debug("JWT validation failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}
		return c.Next()
	}
}

// OptionalAuth stores the caller's claims when a valid token is present and
// lets every request through. Handlers behind it treat a missing customer as
// a guest.
func OptionalAuth(authService *services.AuthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if ok {
			if err := authenticate(c, authService, tokenString); err != nil {
				log.Debug("ignoring invalid token", zap.String("path", c.Path()), zap.Error(err))
			}
		}
		return c.Next()
	}
}

// CustomerID returns the customer id stored by the auth middlewares, or ""
// for guests.
func CustomerID(c *fiber.Ctx) string {
	id, _ := c.Locals("customer_id").(string)
	return id
}

// Expected format: "Bearer <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authenticate(c *fiber.Ctx, authService *services.AuthService, tokenString string) error {
	claims, err := authService.ValidateToken(tokenString)
	if err != nil {
		return err
	}

	// Store claims in Fiber context for subsequent handlers
	c.Locals("user_id", claims["user_id"])
	c.Locals("username", claims["username"])
	if customerID, ok := claims["customer_id"].(string); ok {
		c.Locals("customer_id", customerID)
	}
	return nil
}
