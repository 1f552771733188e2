package accounts

import (
	"context"
	"sync"
	"time"
)

// MemoryUserStore is an in-memory UserStore for tests and quick starts. It
// enforces the same email-uniqueness invariant as the SQL repository.
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*User
	emails map[string]int64
}

var _ UserStore = (*MemoryUserStore)(nil)

// NewMemoryUserStore returns an empty store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		nextID: 1,
		users:  make(map[int64]*User),
		emails: make(map[string]int64),
	}
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[NormalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (s *MemoryUserStore) Create(ctx context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := NormalizeEmail(user.Email)
	if _, ok := s.emails[email]; ok {
		return nil, ErrEmailTaken
	}

	record := cloneUser(user)
	record.ID = s.nextID
	record.Email = email
	now := time.Now()
	record.CreatedAt = &now
	record.UpdatedAt = &now

	s.users[record.ID] = record
	s.emails[email] = record.ID
	s.nextID++

	return cloneUser(record), nil
}

// Len reports how many users the store holds.
func (s *MemoryUserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
