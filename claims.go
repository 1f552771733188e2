package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the token payload. The wire names match the service's
// public contract: user_id carries the integer account id and expires the
// absolute expiry in epoch seconds.
type TokenClaims struct {
	UserID  int64   `json:"user_id"`
	Expires float64 `json:"expires"`
	TokenID string  `json:"jti,omitempty"`
}

var _ jwt.Claims = (*TokenClaims)(nil)

// ExpiresAt returns the expiry as a time.Time.
func (c TokenClaims) ExpiresAt() time.Time {
	if c.Expires == 0 {
		return time.Time{}
	}
	return time.Unix(int64(c.Expires), 0)
}

// GetExpirationTime implements jwt.Claims so the parser enforces expiry.
func (c TokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.Expires == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(c.ExpiresAt()), nil
}

func (c TokenClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c TokenClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

func (c TokenClaims) GetIssuer() (string, error) {
	return "", nil
}

func (c TokenClaims) GetSubject() (string, error) {
	return "", nil
}

func (c TokenClaims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}
