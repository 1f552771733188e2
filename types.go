package accounts

import (
	"context"
	"fmt"
	"time"
)

// Logger is the minimal logging surface the package needs. Any structured
// logger can be adapted to it.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the externally supplied token options. The signing key and
// method come from process configuration; missing or invalid values are a
// startup error, never a per-request one.
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetTokenTTL() time.Duration
	GetContextKey() string
}

// UserStore is the persistence collaborator consumed by AccountService.
// Implementations must enforce email uniqueness at the storage layer and
// compare emails canonically lowercased.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

// TokenIssuer mints identity tokens for a user id.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// TokenVerifier validates a raw token and returns its claims. It fails
// closed: signature, algorithm, and expiry are all checked.
type TokenVerifier interface {
	Validate(raw string) (*TokenClaims, error)
}

// UserGetter is the slice of AccountService the middleware needs.
type UserGetter interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
