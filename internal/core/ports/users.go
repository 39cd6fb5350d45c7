package ports

import (
	"context"

	"evalportal/internal/core/domain/user"
)

// UserRepository lists users ordered by username, first name and last name.
type UserRepository interface {
	List(ctx context.Context, filter user.Filter) ([]*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	Stats(ctx context.Context) (user.Stats, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}
