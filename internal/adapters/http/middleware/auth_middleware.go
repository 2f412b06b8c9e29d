package middleware

import (
	"strings"

	"edugate/internal/core/domain"
	"edugate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// callerKey is the fiber.Locals key holding the verified *domain.Caller
const callerKey = "caller"

const unauthenticatedMessage = "Authentication required"

// TokenVerifier turns a bearer token into the caller it identifies
type TokenVerifier interface {
	Verify(token string) (*domain.Caller, error)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthMiddleware requires a valid bearer token. Missing, malformed, invalid
// and expired tokens all get the same 401.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return response.Unauthorized(c, unauthenticatedMessage)
		}

		caller, err := verifier.Verify(token)
		if err != nil {
			return response.Unauthorized(c, unauthenticatedMessage)
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// RequireRole allows only callers holding role. Must run after AuthMiddleware.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFrom(c)
		if caller == nil {
			return response.Unauthorized(c, unauthenticatedMessage)
		}
		if caller.Role != role {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and
// otherwise lets the request through anonymously
func OptionalAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if caller, err := verifier.Verify(token); err == nil {
				c.Locals(callerKey, caller)
			}
		}
		return c.Next()
	}
}

// CallerFrom returns the verified caller, or nil for anonymous requests
func CallerFrom(c *fiber.Ctx) *domain.Caller {
	caller, _ := c.Locals(callerKey).(*domain.Caller)
	return caller
}
