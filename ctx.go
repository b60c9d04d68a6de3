package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// AuthLocalsKey is where the resolved AuthContext lives in fiber locals
const AuthLocalsKey = "catalog.auth"

// AuthContext is the request-scoped authentication state. It is produced
// fresh per request by the auth resolver, owned by the request, and discarded
// with the response. It is never persisted or pooled.
type AuthContext struct {
	Authenticated bool
	User          *User
}

// Anonymous is the context every resolution failure converges to
func Anonymous() *AuthContext {
	return &AuthContext{}
}

// Principal returns the authenticated user, nil when anonymous
func (a *AuthContext) Principal() *User {
	if a == nil || !a.Authenticated {
		return nil
	}
	return a.User
}

// WithAuthContext stores the AuthContext in the request's locals
func WithAuthContext(c *fiber.Ctx, authCtx *AuthContext) {
	c.Locals(AuthLocalsKey, authCtx)
}

// AuthFromContext finds the AuthContext for the request. Requests that never
// went through the resolver read as anonymous.
func AuthFromContext(c *fiber.Ctx) *AuthContext {
	raw := c.Locals(AuthLocalsKey)
	if raw == nil {
		return Anonymous()
	}

	authCtx, ok := raw.(*AuthContext)
	if !ok || authCtx == nil {
		return Anonymous()
	}
	return authCtx
}
