package authware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/middleware/authware"
)

type stubTokens struct {
	claims *catalog.Claims
	err    error
}

func (s stubTokens) Issue(*catalog.User) (string, error) { return "stub-token", nil }

func (s stubTokens) Verify(string) (*catalog.Claims, error) { return s.claims, s.err }

type stubUsers struct {
	user *catalog.User
	err  error
}

func (s stubUsers) GetByID(context.Context, string) (*catalog.User, error) {
	return s.user, s.err
}

type probeResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
}

func newProbeApp(cfg authware.Config) *fiber.App {
	app := fiber.New()
	app.Get("/probe", authware.New(cfg), func(c *fiber.Ctx) error {
		auth := catalog.AuthFromContext(c)

		username := ""
		if principal := auth.Principal(); principal != nil {
			username = principal.Username
		}

		return c.JSON(probeResponse{
			Authenticated: auth.Authenticated,
			Username:      username,
		})
	})
	return app
}

func probe(t *testing.T, app *fiber.App, authorization string) (*http.Response, probeResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var body probeResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	resp.Body.Close()

	return resp, body
}

func happyConfig(optional bool) authware.Config {
	user := &catalog.User{ID: uuid.New(), Username: "probe-user"}
	return authware.Config{
		Tokens: stubTokens{claims: &catalog.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID.String()},
		}},
		Users:    stubUsers{user: user},
		Optional: optional,
	}
}

func TestMandatoryAuth(t *testing.T) {
	t.Run("no token is rejected", func(t *testing.T) {
		app := newProbeApp(happyConfig(false))

		resp, _ := probe(t, app, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong scheme is rejected", func(t *testing.T) {
		app := newProbeApp(happyConfig(false))

		resp, _ := probe(t, app, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		cfg := happyConfig(false)
		cfg.Tokens = stubTokens{err: catalog.ErrTokenInvalid}
		app := newProbeApp(cfg)

		resp, _ := probe(t, app, "Bearer bad-token")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("vanished user is rejected", func(t *testing.T) {
		cfg := happyConfig(false)
		cfg.Users = stubUsers{err: catalog.ErrUserNotFound}
		app := newProbeApp(cfg)

		resp, _ := probe(t, app, "Bearer stale-token")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token proceeds authenticated", func(t *testing.T) {
		app := newProbeApp(happyConfig(false))

		resp, body := probe(t, app, "Bearer good-token")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, body.Authenticated)
		assert.Equal(t, "probe-user", body.Username)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("no token proceeds anonymous", func(t *testing.T) {
		app := newProbeApp(happyConfig(true))

		resp, body := probe(t, app, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, body.Authenticated)
	})

	t.Run("invalid token proceeds anonymous", func(t *testing.T) {
		cfg := happyConfig(true)
		cfg.Tokens = stubTokens{err: catalog.ErrTokenInvalid}
		app := newProbeApp(cfg)

		resp, body := probe(t, app, "Bearer bad-token")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, body.Authenticated)
	})

	t.Run("vanished user proceeds anonymous", func(t *testing.T) {
		cfg := happyConfig(true)
		cfg.Users = stubUsers{err: catalog.ErrUserNotFound}
		app := newProbeApp(cfg)

		resp, body := probe(t, app, "Bearer stale-token")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, body.Authenticated)
	})

	t.Run("valid token proceeds authenticated", func(t *testing.T) {
		app := newProbeApp(happyConfig(true))

		resp, body := probe(t, app, "Bearer good-token")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, body.Authenticated)
	})
}
