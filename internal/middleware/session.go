package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cardauth/cardauth/internal/auth"
)

// UserIDKey is the locals key under which the authenticated user ID is stored.
const UserIDKey = "user_id"

// SessionAuth gates every ledger operation behind a bearer token. Requests
// with a missing, malformed, expired or forged token are rejected with 401
// before any downstream handler runs. Validity is delegated entirely to the
// verifier; no server-side session state is consulted.
func SessionAuth(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(authz[len("Bearer "):])

		userID, err := verifier.Verify(token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
