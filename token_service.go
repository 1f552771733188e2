package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the validity window for issued tokens when the
// configuration does not provide one.
const DefaultTokenTTL = 900 * time.Second

// TokenService issues and validates stateless identity tokens. Tokens are
// never stored server-side; the signature and embedded expiry are the only
// state.
type TokenService struct {
	signingKey []byte
	method     jwt.SigningMethod
	ttl        time.Duration
	logger     Logger
	now        func() time.Time
}

// NewTokenService creates a TokenService from external configuration. An
// empty signing key or an unknown/non-HMAC signing method is a
// configuration fault and fails construction; it must never surface as a
// per-request error.
func NewTokenService(cfg Config, logger Logger) (*TokenService, error) {
	if logger == nil {
		logger = defLogger{}
	}

	if cfg.GetSigningKey() == "" {
		return nil, errors.New("token signing key is required", errors.CategoryBadInput)
	}

	method := jwt.GetSigningMethod(cfg.GetSigningMethod())
	if method == nil {
		return nil, errors.New(
			fmt.Sprintf("unknown signing method: %q", cfg.GetSigningMethod()),
			errors.CategoryBadInput,
		)
	}

	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New(
			fmt.Sprintf("signing method %q is not an HMAC method", method.Alg()),
			errors.CategoryBadInput,
		)
	}

	ttl := cfg.GetTokenTTL()
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenService{
		signingKey: []byte(cfg.GetSigningKey()),
		method:     method,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// WithClock overrides the time source. Used by tests to simulate expiry.
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	if now != nil {
		ts.now = now
	}
	return ts
}

// TTL returns the configured token validity window.
func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

// Issue mints a signed token asserting the given user id until now+TTL.
func (ts *TokenService) Issue(userID int64) (string, error) {
	claims := &TokenClaims{
		UserID:  userID,
		Expires: float64(ts.now().Add(ts.ttl).Unix()),
		TokenID: uuid.NewString(),
	}

	token := jwt.NewWithClaims(ts.method, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Validate parses and verifies a raw token. It fails closed: the signature,
// the algorithm allow-list, and the expiry are all checked, and any decode
// fault is converted to a typed rejection instead of escaping. Expired
// tokens come back as ErrTokenExpired, everything else as ErrTokenMalformed;
// the request pipeline collapses both into one outward failure.
func (ts *TokenService) Validate(raw string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	},
		jwt.WithValidMethods([]string{ts.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		ts.logger.Error("token validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	if claims.UserID <= 0 {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
