package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"evalportal/internal/core/domain/user"
	postgresPlatform "evalportal/internal/platform/database/postgres"
)

var userColumns = []string{
	"id", "username", "first_name", "last_name", "email", "role",
	"is_active", "is_professor", "is_aluno", "sso_linked", "role_manual",
	"password", "date_joined", "last_login",
}

type UserRepository struct {
	db Connector
}

func NewUserRepository(db Connector) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, error) {
	q := r.db.Connection().Builder().
		Select(userColumns...).
		From("usuarios").
		OrderBy("username", "first_name", "last_name")

	if filter.Search != "" {
		like := "%" + escapeLike(filter.Search) + "%"
		q = q.Where(sq.Or{
			sq.ILike{"username": like},
			sq.ILike{"first_name": like},
			sq.ILike{"last_name": like},
			sq.ILike{"email": like},
		})
	}
	if active := filter.ActiveOnly(); active != nil {
		q = q.Where(sq.Eq{"is_active": *active})
	}
	if filter.Role != "" {
		role, ok := filter.RoleValue()
		if !ok {
			return []*user.User{}, nil
		}
		q = q.Where(sq.Eq{"role": string(role)})
	}

	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	row := r.db.Connection().Builder().
		Select(userColumns...).
		From("usuarios").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	res, err := r.db.Connection().Builder().
		Update("usuarios").
		SetMap(map[string]any{
			"username":     u.Username,
			"first_name":   u.FirstName,
			"last_name":    u.LastName,
			"email":        u.Email,
			"role":         string(u.Role),
			"is_active":    u.Active,
			"is_professor": u.Professor,
			"is_aluno":     u.Student,
			"sso_linked":   u.SSOLinked,
			"role_manual":  u.RoleManual,
			"password":     u.Password,
		}).
		Where(sq.Eq{"id": u.ID}).
		ExecContext(ctx)
	if err != nil {
		if postgresPlatform.IsUniqueViolation(err) {
			return &user.UsernameTakenError{Username: u.Username}
		}
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Save inserts a user; an existing id is left untouched.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	_, err := r.db.Connection().Builder().
		Insert("usuarios").
		Columns(userColumns...).
		Values(
			u.ID, u.Username, u.FirstName, u.LastName, u.Email, string(u.Role),
			u.Active, u.Professor, u.Student, u.SSOLinked, u.RoleManual,
			u.Password, u.DateJoined, u.LastLogin,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ExecContext(ctx)
	if err != nil {
		if postgresPlatform.IsUniqueViolation(err) {
			return &user.UsernameTakenError{Username: u.Username}
		}
		return fmt.Errorf("insert user %d: %w", u.ID, err)
	}
	return nil
}

func (r *UserRepository) Stats(ctx context.Context) (user.Stats, error) {
	var stats user.Stats
	err := r.db.Connection().Builder().
		Select(
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE is_active)",
			"COUNT(*) FILTER (WHERE is_professor)",
			"COUNT(*) FILTER (WHERE is_aluno)",
		).
		From("usuarios").
		QueryRowContext(ctx).
		Scan(&stats.Total, &stats.Active, &stats.Professors, &stats.Students)
	if err != nil {
		return stats, fmt.Errorf("count users: %w", err)
	}
	return stats, nil
}

func scanUser(row sq.RowScanner) (*user.User, error) {
	var (
		u         user.User
		role      string
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &role,
		&u.Active, &u.Professor, &u.Student, &u.SSOLinked, &u.RoleManual,
		&u.Password, &u.DateJoined, &lastLogin,
	)
	if err != nil {
		return nil, err
	}

	u.Role = user.Role(role)
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
