// Package middleware provides the Fiber middleware shared by all routes.
package middleware

import (
	"strings"

	"skillshare/internal/auth"
	"skillshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

// IdentityLocal is the Fiber locals key holding the caller's auth.Identity.
const IdentityLocal = "identity"

// TokenParser validates a bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate resolves a bearer token into an identity. It never rejects:
// requests with a missing, malformed or expired token continue anonymously,
// and paths under /auth/ skip token handling entirely.
func Authenticate(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/auth/") {
			return c.Next()
		}

		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			Logger.DebugContext(c.UserContext(), "ignoring invalid bearer token", "error", err.Error())
			return c.Next()
		}

		id := auth.Identity{Email: claims.Subject}
		c.Locals(IdentityLocal, id)
		c.SetUserContext(auth.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

// RequireIdentity rejects requests that Authenticate left anonymous.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromCtx(c); !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authentication required"))
		}
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Authenticate.
func IdentityFromCtx(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(IdentityLocal).(auth.Identity)
	if !ok || id.Email == "" {
		return auth.Identity{}, false
	}
	return id, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
