package user

import (
	"context"
	"fmt"

	"evalportal/internal/core/domain/fieldcheck"
	"evalportal/internal/core/domain/paging"
	"evalportal/internal/core/domain/user"
	"evalportal/internal/core/ports"
	"evalportal/internal/platform/logger"
)

type Usecase struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	pageSize int
}

func NewUsecase(repo ports.UserRepository, hasher ports.PasswordHasher, pageSize int) *Usecase {
	return &Usecase{
		repo:     repo,
		hasher:   hasher,
		pageSize: pageSize,
	}
}

// ListResult is one page of the users table with the header counters.
type ListResult struct {
	Users  []*user.User `json:"usuarios"`
	Page   paging.Page  `json:"page"`
	Stats  user.Stats   `json:"stats"`
	Filter user.Filter  `json:"-"`
}

func (uc *Usecase) ListUsers(ctx context.Context, filter user.Filter, rawPage string) (*ListResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("Listing users",
		logger.String("search", filter.Search),
		logger.String("role", filter.Role),
		logger.String("status", filter.Status),
	)

	users, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	page := paging.New(len(users), uc.pageSize, rawPage)
	return &ListResult{
		Users:  paging.Slice(users, page),
		Page:   page,
		Stats:  stats,
		Filter: filter,
	}, nil
}

func (uc *Usecase) GetUser(ctx context.Context, id int64) (*user.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("Getting user", logger.Int64("user_id", id))

	return uc.repo.GetByID(ctx, id)
}

// ChangeRole assigns a new role. On SSO-linked accounts the role becomes manual.
func (uc *Usecase) ChangeRole(ctx context.Context, id int64, rawRole string) (*user.User, error) {
	log := logger.FromContext(ctx)

	role, err := user.ParseRole(rawRole)
	if err != nil {
		log.Warn("Invalid role requested", logger.Int64("user_id", id), logger.String("role", rawRole))
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.AssignRole(role)
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	log.Info("Role changed",
		logger.Int64("user_id", id),
		logger.String("role", string(role)),
		logger.Bool("role_manual", u.RoleManual),
	)
	return u, nil
}

// ResetManualRole gives role management back to the SSO provider. reset is
// false, and nothing is stored, when the account has no SSO link.
func (uc *Usecase) ResetManualRole(ctx context.Context, id int64) (u *user.User, reset bool, err error) {
	log := logger.FromContext(ctx)

	u, err = uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if !u.ResetManualRole() {
		log.Debug("User has no SSO link, nothing to reset", logger.Int64("user_id", id))
		return u, false, nil
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, false, err
	}

	log.Info("Manual role flag cleared", logger.Int64("user_id", id))
	return u, true, nil
}

// EditInput is the user edit form. Field shapes are checked by the caller;
// an empty password keeps the current one.
type EditInput struct {
	Username  string `json:"username" form:"username" label:"Matrícula" validate:"required,numericid"`
	FirstName string `json:"first_name" form:"first_name" label:"Nome" validate:"nameshape"`
	LastName  string `json:"last_name" form:"last_name" label:"Sobrenome"`
	Email     string `json:"email" form:"email" label:"Email" validate:"emailshape"`
	Password  string `json:"password" form:"password" label:"Senha" validate:"strength"`
	Active    bool   `json:"is_active" form:"is_active"`
}

func (uc *Usecase) EditUser(ctx context.Context, id int64, in EditInput) (*user.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("Editing user", logger.Int64("user_id", id), logger.String("username", in.Username))

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	username := fieldcheck.Trim(in.Username)
	if username == "" {
		return nil, user.ErrInvalidProfile
	}

	updated := current.Clone()
	updated.Username = username
	updated.FirstName = fieldcheck.Trim(in.FirstName)
	updated.LastName = fieldcheck.Trim(in.LastName)
	updated.Email = fieldcheck.Trim(in.Email)
	updated.Active = in.Active

	if in.Password != "" {
		hash, err := uc.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updated.Password = hash
	}

	if err := uc.repo.Update(ctx, updated); err != nil {
		log.Warn("User update failed", logger.Int64("user_id", id), logger.Error(err))
		return nil, err
	}

	log.Info("User updated", logger.Int64("user_id", id))
	return updated, nil
}

// ExportUsers returns every user for the CSV export.
func (uc *Usecase) ExportUsers(ctx context.Context) ([]*user.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("Exporting users")

	users, err := uc.repo.List(ctx, user.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
