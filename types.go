package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// TokenService issues and verifies bearer tokens carrying a user identity.
type TokenService interface {
	Issue(user *User) (string, error)
	Verify(token string) (*Claims, error)
}

// PrincipalResolver loads the principal a verified token points at. The user
// may have been deleted after the token was issued, in which case resolution
// fails and the request is treated as anonymous or rejected, depending on the
// route.
type PrincipalResolver interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// defLogger is the fallback when no Logger is injected. Call sites pass
// key-value pairs after the message, same as the slog adapter consumes.
type defLogger struct {
	w io.Writer
}

func (d defLogger) Error(msg string, args ...any) { d.print("[ERR]", msg, args) }

func (d defLogger) Info(msg string, args ...any) { d.print("[INF]", msg, args) }

func (d defLogger) Debug(msg string, args ...any) { d.print("[DBG]", msg, args) }

func (d defLogger) print(level, msg string, args []any) {
	out := d.w
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, level+" CATALOG "+kvline(msg, args))
}

func kvline(msg string, args []any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		fmt.Fprintf(&b, " %v", args[len(args)-1])
	}
	return b.String()
}
