package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhive/taskhive-backend/internal/domain"
)

const localsUserID = "user_id"

// Middleware validates the Authorization bearer token and stores the
// resolved account id in the request locals. Protected routes never run
// without it.
func Middleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		userID, err := ParseToken(strings.TrimSpace(parts[1]), secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, domain.ErrInvalidToken.Error())
		}

		c.Locals(localsUserID, userID)
		return c.Next()
	}
}

// UserID returns the account id the gate middleware stored for this
// request.
func UserID(c *fiber.Ctx) (string, error) {
	if v := c.Locals(localsUserID); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s, nil
		}
	}
	return "", domain.ErrInvalidToken
}
