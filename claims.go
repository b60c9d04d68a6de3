package catalog

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: subject id plus the email and username the
// original account carried when the token was issued.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time, zero when absent
func (c *Claims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
