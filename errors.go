package accounts

import "github.com/goliatone/go-errors"

const (
	TextCodeEmailTaken          = "account_email_taken"
	TextCodeNotRegistered       = "account_not_registered"
	TextCodeBadCredentials      = "account_bad_credentials"
	TextCodeUserNotFound        = "account_user_not_found"
	TextCodeInvalidPasswordHash = "account_invalid_password_hash"
	TextCodeValidation          = "account_invalid_payload"
	TextCodeUnauthenticated     = "auth_unauthenticated"
	TextCodeTokenExpired        = "auth_token_expired"
	TextCodeTokenMalformed      = "auth_token_malformed"
)

// ErrEmailTaken is returned when a signup email already has an account.
var ErrEmailTaken = errors.New("email already registered", errors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// ErrNotRegistered is returned when a login email has no account.
var ErrNotRegistered = errors.New("email is not registered", errors.CategoryAuth).
	WithTextCode(TextCodeNotRegistered).
	WithCode(errors.CodeBadRequest)

// ErrBadCredentials is returned when a login password does not verify.
var ErrBadCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeBadRequest)

// ErrUserNotFound is returned when a user id has no record.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrUnauthenticated is the single outward failure of the request pipeline.
// Expired, tampered, malformed, and missing credentials all map here.
var ErrUnauthenticated = errors.New("invalid authentication credentials", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned by TokenService.Validate for a structurally
// valid token past its expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers every other validation failure: bad signature,
// unexpected algorithm, garbled payload, missing claims.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword signals a normal password mismatch. It never
// reaches API responses; AccountService translates it to ErrBadCredentials.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials)

// ErrInvalidPasswordHash signals a stored hash that bcrypt cannot parse,
// i.e. corrupted data rather than a wrong password.
var ErrInvalidPasswordHash = errors.New("stored password hash is malformed", errors.CategoryInternal).
	WithTextCode(TextCodeInvalidPasswordHash).
	WithCode(errors.CodeInternal)

// ErrNoIdentityInContext is returned when a handler asks for the verified
// identity outside a protected route.
var ErrNoIdentityInContext = errors.New("no identity in request context", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)
