package accounts

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// AuthScheme is the exact Authorization prefix the pipeline accepts:
// case-sensitive, single space.
const AuthScheme = "Bearer "

// DefaultContextKey is where the verified identity lands in the request
// locals when the configuration does not name a key.
const DefaultContextKey = "identity"

// RequireIdentity returns the middleware guarding protected routes. It
// extracts the bearer token, validates it, loads the user, and stores the
// public Identity projection in the request locals. Every credential
// failure is the same outward ErrUnauthenticated; a user lookup failure is
// propagated as-is so a store fault stays distinguishable from a bad
// credential.
func RequireIdentity(users UserGetter, tokens TokenVerifier, cfg Config) fiber.Handler {
	contextKey := DefaultContextKey
	if cfg != nil && cfg.GetContextKey() != "" {
		contextKey = cfg.GetContextKey()
	}

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return renderError(c, ErrUnauthenticated)
		}

		if !strings.HasPrefix(header, AuthScheme) {
			return renderError(c, ErrUnauthenticated)
		}

		claims, err := tokens.Validate(header[len(AuthScheme):])
		if err != nil {
			return renderError(c, ErrUnauthenticated)
		}

		if claims.UserID <= 0 {
			return renderError(c, ErrUnauthenticated)
		}

		user, err := users.GetUserByID(c.UserContext(), claims.UserID)
		if err != nil {
			return renderError(c, err)
		}

		c.Locals(contextKey, user.Identity())
		return c.Next()
	}
}

// IdentityFromContext retrieves the verified identity a protected handler
// runs with. The key must match the one RequireIdentity stored under.
func IdentityFromContext(c *fiber.Ctx, contextKey string) (*Identity, error) {
	if contextKey == "" {
		contextKey = DefaultContextKey
	}

	identity, ok := c.Locals(contextKey).(*Identity)
	if !ok || identity == nil {
		return nil, ErrNoIdentityInContext
	}

	return identity, nil
}

// renderError writes a rich error as a JSON response. Unknown faults are
// wrapped as internal so no raw error detail leaks to clients.
func renderError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"message":   richErr.Message,
			"text_code": richErr.TextCode,
		},
	})
}
