package accounts

import (
	"context"

	"github.com/goliatone/go-errors"
)

// AccountService orchestrates signup, login, and lookup against a
// UserStore and a TokenIssuer. It owns the business rules and their
// failure outcomes; transport layers only translate its errors.
type AccountService struct {
	store  UserStore
	tokens TokenIssuer
	logger Logger
}

// NewAccountService returns a new AccountService.
func NewAccountService(store UserStore, tokens TokenIssuer) *AccountService {
	return &AccountService{
		store:  store,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *AccountService) WithLogger(logger Logger) *AccountService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Signup creates a new account and returns its public projection, never
// the hash. The email pre-check is read-then-write; the store's unique
// constraint is what actually closes the concurrent-signup race, so a
// constraint violation on insert maps to the same ErrEmailTaken.
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*Identity, error) {
	email = NormalizeEmail(email)

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check existing account")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create account")
	}

	return user.Identity(), nil
}

// Login verifies the credentials and issues a token. The existence check
// runs before the password check on purpose: an unknown email is
// ErrNotRegistered, a known email with a bad password is ErrBadCredentials.
// The two outcomes are deliberately distinct; this mirrors the original
// product behavior and is not enumeration-hardened.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrNotRegistered
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to look up account")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return "", ErrBadCredentials
		}
		s.logger.Error("login found unreadable password hash for user %d", user.ID)
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("login token issuance failed: %s", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "unable to process request").
			WithCode(errors.CodeInternal)
	}

	return token, nil
}

// GetUserByID loads a user record by id.
func (s *AccountService) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up user")
	}
	return user, nil
}
