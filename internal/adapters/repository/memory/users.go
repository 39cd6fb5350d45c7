package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"evalportal/internal/core/domain/user"
	memoryPlatform "evalportal/internal/platform/repository/memory"
)

// UserRepository keeps users in process. Stored values are copied on the
// way in and out so callers never share them.
type UserRepository struct {
	store *memoryPlatform.Repository[int64, *user.User]
	// serialises writes so the username check and the write are atomic
	writeMu sync.Mutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		store: memoryPlatform.New[int64, *user.User](),
	}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.checkUsername(ctx, u); err != nil {
		return err
	}
	if err := r.store.Save(ctx, u.Clone()); err != nil {
		if errors.Is(err, memoryPlatform.ErrAlreadyExists) {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memoryPlatform.ErrNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return u.Clone(), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.checkUsername(ctx, u); err != nil {
		return err
	}
	if err := r.store.Update(ctx, u.Clone()); err != nil {
		if errors.Is(err, memoryPlatform.ErrNotFound) {
			return user.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, error) {
	found, err := r.store.Find(ctx, filter.Matches)
	if err != nil {
		return nil, err
	}

	out := make([]*user.User, len(found))
	for i, u := range found {
		out[i] = u.Clone()
	}
	slices.SortStableFunc(out, func(a, b *user.User) int {
		return cmp.Or(
			cmp.Compare(a.Username, b.Username),
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.LastName, b.LastName),
		)
	})
	return out, nil
}

func (r *UserRepository) Stats(ctx context.Context) (user.Stats, error) {
	var stats user.Stats
	all, err := r.store.List(ctx)
	if err != nil {
		return stats, err
	}
	for _, u := range all {
		stats.Add(u)
	}
	return stats, nil
}

func (r *UserRepository) checkUsername(ctx context.Context, u *user.User) error {
	taken, err := r.store.Find(ctx, func(other *user.User) bool {
		return other.ID != u.ID && other.Username == u.Username
	})
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		return &user.UsernameTakenError{Username: u.Username}
	}
	return nil
}
