package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/h-wallet/h_wallet/internal/auth"
)

const phoneNumberKey = "phone_number"

// JWTAuth returns a middleware that verifies bearer tokens and exposes the
// phone-number claim to downstream handlers. Resolving the claim to a user
// record is left to the services.
func JWTAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		claims, err := auth.Verify(tokenStr, secret)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		c.Locals(phoneNumberKey, claims.PhoneNumber)
		return c.Next()
	}
}

// AuthenticatedPhone returns the phone-number claim stored by JWTAuth.
func AuthenticatedPhone(c *fiber.Ctx) (string, bool) {
	phone, ok := c.Locals(phoneNumberKey).(string)
	return phone, ok && phone != ""
}
