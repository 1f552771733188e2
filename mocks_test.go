package accounts_test

import (
	"context"
	"time"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/mock"
)

// testConfig implements accounts.Config
type testConfig struct {
	key        string
	method     string
	ttl        time.Duration
	contextKey string
}

func (c testConfig) GetSigningKey() string      { return c.key }
func (c testConfig) GetSigningMethod() string   { return c.method }
func (c testConfig) GetTokenTTL() time.Duration { return c.ttl }
func (c testConfig) GetContextKey() string      { return c.contextKey }

func newTestConfig() testConfig {
	return testConfig{
		key:        "test-signing-key",
		method:     "HS256",
		ttl:        15 * time.Minute,
		contextKey: "identity",
	}
}

// MockTokenIssuer implements accounts.TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

// countingStore wraps a UserStore and counts calls, so tests can assert
// the pipeline never touches the store on a rejected credential.
type countingStore struct {
	inner      accounts.UserStore
	getByID    int
	getByEmail int
	creates    int
}

func (s *countingStore) GetByID(ctx context.Context, id int64) (*accounts.User, error) {
	s.getByID++
	return s.inner.GetByID(ctx, id)
}

func (s *countingStore) GetByEmail(ctx context.Context, email string) (*accounts.User, error) {
	s.getByEmail++
	return s.inner.GetByEmail(ctx, email)
}

func (s *countingStore) Create(ctx context.Context, user *accounts.User) (*accounts.User, error) {
	s.creates++
	return s.inner.Create(ctx, user)
}

func (s *countingStore) calls() int {
	return s.getByID + s.getByEmail + s.creates
}
