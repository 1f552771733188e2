package accounts

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// UsersRepository implements UserStore using Bun. Email uniqueness is
// enforced by the users table constraint, not by this code; a violation on
// insert surfaces as ErrEmailTaken.
type UsersRepository struct {
	db *bun.DB
}

var _ UserStore = (*UsersRepository)(nil)

// NewUsersRepository creates a new repository.
func NewUsersRepository(db *bun.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Where("usr.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to select user by id")
	}
	return user, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Where("lower(usr.email) = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to select user by email")
	}
	return user, nil
}

func (r *UsersRepository) Create(ctx context.Context, user *User) (*User, error) {
	user.Email = NormalizeEmail(user.Email)

	res, err := r.db.NewInsert().
		Model(user).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
	}

	if user.ID == 0 {
		if id, err := res.LastInsertId(); err == nil {
			user.ID = id
		}
	}

	return user, nil
}

// isUniqueViolation matches the constraint errors of the supported
// drivers. SQLite reports "UNIQUE constraint failed", Postgres
// "duplicate key value violates unique constraint".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
