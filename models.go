package accounts

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// User is the user model. PasswordHash is opaque and never serialized.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Identity is the public-safe projection of a User handed to protected
// operations. It never carries the password hash.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity returns the public projection for the user.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// constraint agree on a canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
