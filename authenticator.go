package catalog

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Auther owns credential verification and registration. It is the only
// component that touches password hashes.
type Auther struct {
	users  Users
	tokens TokenService
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users Users, tokens TokenService) *Auther {
	return &Auther{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Register creates a new account and issues its first token. Username and
// email must be unused; the email comparison is case insensitive.
func (a *Auther) Register(ctx context.Context, username, email, password string) (*User, string, error) {
	exists, err := a.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, "", err
	}

	if exists {
		return nil, "", ErrDuplicateUser
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user, err := a.users.Create(ctx, &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := a.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error so responses carry no enumeration signal.
func (a *Auther) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrMismatchedHashAndPassword
		}
		return nil, "", err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.logger.Debug("login failed password check", "email", email)
		return nil, "", ErrMismatchedHashAndPassword
	}

	token, err := a.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
