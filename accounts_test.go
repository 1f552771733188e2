package accounts_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountService(t *testing.T) (*accounts.AccountService, *accounts.MemoryUserStore, *accounts.TokenService) {
	t.Helper()

	tokens, err := accounts.NewTokenService(newTestConfig(), nil)
	require.NoError(t, err)

	store := accounts.NewMemoryUserStore()
	return accounts.NewAccountService(store, tokens), store, tokens
}

func TestAccountServiceSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and returns the public projection", func(t *testing.T) {
		service, store, _ := newTestAccountService(t)

		identity, err := service.Signup(ctx, "alice", "a@x.com", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, "alice", identity.Username)
		assert.Equal(t, "a@x.com", identity.Email)
		assert.NotZero(t, identity.ID)

		stored, err := store.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
		assert.NoError(t, accounts.ComparePasswordAndHash("s3cret-pass", stored.PasswordHash))
	})

	t.Run("normalizes the email", func(t *testing.T) {
		service, store, _ := newTestAccountService(t)

		_, err := service.Signup(ctx, "alice", "  Alice@X.COM ", "s3cret-pass")
		require.NoError(t, err)

		_, err = store.GetByEmail(ctx, "alice@x.com")
		assert.NoError(t, err)
	})

	t.Run("duplicate email fails and leaves the store unchanged", func(t *testing.T) {
		service, store, _ := newTestAccountService(t)

		_, err := service.Signup(ctx, "alice", "a@x.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = service.Signup(ctx, "intruder", "A@x.com", "other-pass")
		assert.ErrorIs(t, err, accounts.ErrEmailTaken)

		assert.Equal(t, 1, store.Len())
		stored, err := store.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", stored.Username)
	})

	t.Run("empty password is a validation error", func(t *testing.T) {
		service, store, _ := newTestAccountService(t)

		_, err := service.Signup(ctx, "alice", "a@x.com", "")
		assert.Error(t, err)
		assert.Equal(t, 0, store.Len())
	})
}

func TestAccountServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		service, _, _ := newTestAccountService(t)

		_, err := service.Login(ctx, "nobody@x.com", "whatever")
		assert.ErrorIs(t, err, accounts.ErrNotRegistered)
	})

	t.Run("wrong password", func(t *testing.T) {
		service, _, _ := newTestAccountService(t)

		_, err := service.Signup(ctx, "alice", "a@x.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = service.Login(ctx, "a@x.com", "wrong-pass")
		assert.ErrorIs(t, err, accounts.ErrBadCredentials)
	})

	t.Run("valid credentials return a token for the stored id", func(t *testing.T) {
		service, store, tokens := newTestAccountService(t)

		_, err := service.Signup(ctx, "alice", "a@x.com", "s3cret-pass")
		require.NoError(t, err)

		token, err := service.Login(ctx, "A@X.com", "s3cret-pass")
		require.NoError(t, err)

		claims, err := tokens.Validate(token)
		require.NoError(t, err)

		stored, err := store.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.UserID)
	})

	t.Run("issuance failure is a server fault, not a credential fault", func(t *testing.T) {
		store := accounts.NewMemoryUserStore()
		issuer := &MockTokenIssuer{}
		issuer.On("Issue", int64(1)).Return("", assert.AnError)

		service := accounts.NewAccountService(store, issuer)

		_, err := service.Signup(ctx, "alice", "a@x.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = service.Login(ctx, "a@x.com", "s3cret-pass")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, accounts.ErrBadCredentials)
		assert.NotErrorIs(t, err, accounts.ErrNotRegistered)
		issuer.AssertExpectations(t)
	})
}

func TestAccountServiceGetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the record", func(t *testing.T) {
		service, _, _ := newTestAccountService(t)

		identity, err := service.Signup(ctx, "alice", "a@x.com", "s3cret-pass")
		require.NoError(t, err)

		user, err := service.GetUserByID(ctx, identity.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("missing id", func(t *testing.T) {
		service, _, _ := newTestAccountService(t)

		_, err := service.GetUserByID(ctx, 999)
		assert.ErrorIs(t, err, accounts.ErrUserNotFound)
	})
}
