// Package authware resolves the request's authentication state. One resolver
// serves both route kinds: mandatory routes reject when resolution fails,
// optional routes proceed as anonymous and let handlers gate field
// visibility off the resolved AuthContext.
package authware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	catalog "github.com/goliatone/go-catalog"
)

// Config configures the auth resolver middleware
type Config struct {
	// Tokens verifies bearer tokens. Required.
	Tokens catalog.TokenService
	// Users loads the principal a verified token points at. Required.
	Users catalog.PrincipalResolver
	// Optional makes every resolution failure converge to an anonymous
	// AuthContext instead of rejecting the request.
	Optional bool
	// AuthScheme defaults to "Bearer"
	AuthScheme string
	// ErrorHandler renders the rejection on mandatory routes
	ErrorHandler func(c *fiber.Ctx, err error) error
	Logger       catalog.Logger
}

// New builds the resolver middleware. The terminal states per request are:
// no token, invalid token, or vanished user resolve to anonymous (optional)
// or a 401 short circuit with no side effects (mandatory); a valid token
// whose user still exists resolves to an authenticated AuthContext.
func New(cfg Config) fiber.Handler {
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return func(c *fiber.Ctx) error {
		token, ok := tokenFromHeader(c, cfg.AuthScheme)
		if !ok {
			return cfg.fail(c, catalog.ErrNotAuthorized)
		}

		claims, err := cfg.Tokens.Verify(token)
		if err != nil {
			return cfg.fail(c, err)
		}

		user, err := cfg.Users.GetByID(c.UserContext(), claims.UserID())
		if err != nil {
			// User deleted after the token was issued; the token no
			// longer names a principal.
			return cfg.fail(c, catalog.ErrNotAuthorized)
		}

		catalog.WithAuthContext(c, &catalog.AuthContext{
			Authenticated: true,
			User:          user,
		})

		return c.Next()
	}
}

func (cfg Config) fail(c *fiber.Ctx, err error) error {
	if cfg.Optional {
		cfg.Logger.Debug("optional auth failed, proceeding anonymous", "error", err)
		catalog.WithAuthContext(c, catalog.Anonymous())
		return c.Next()
	}

	return cfg.ErrorHandler(c, err)
}

func tokenFromHeader(c *fiber.Ctx, scheme string) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func defaultErrorHandler(c *fiber.Ctx, _ error) error {
	// The rejection reason is intentionally uniform
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "not authorized to access this resource",
	})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
