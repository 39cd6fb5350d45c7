package user

import (
	"strconv"
	"strings"
	"time"
)

// User is an account of the portal. Username holds the registration number
// (matrícula) and is unique.
type User struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Active     bool       `json:"is_active"`
	Professor  bool       `json:"is_professor"`
	Student    bool       `json:"is_aluno"`
	SSOLinked  bool       `json:"sso_linked"`
	RoleManual bool       `json:"role_manual"`
	Password   string     `json:"-"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

func (u *User) GetID() int64 {
	return u.ID
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) Status() string {
	if u.Active {
		return "Ativo"
	}
	return "Inativo"
}

// PrincipalRole is the role reported by the users export: admin and
// coordinator win over the professor and student profiles.
func (u *User) PrincipalRole() string {
	switch {
	case u.Role == RoleAdmin || u.Role == RoleCoordenador:
		return u.Role.Label()
	case u.Professor:
		return RoleProfessor.Label()
	case u.Student:
		return RoleAluno.Label()
	default:
		return RoleNone.Label()
	}
}

// AssignRole sets the role. For SSO-linked accounts the role is flagged as
// manual so the next SSO login keeps it.
func (u *User) AssignRole(role Role) {
	u.Role = role
	if u.SSOLinked {
		u.RoleManual = true
	}
}

// ResetManualRole hands the role back to the SSO provider. It reports false
// when the account has no SSO link.
func (u *User) ResetManualRole() bool {
	if !u.SSOLinked {
		return false
	}
	u.RoleManual = false
	return true
}

func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

// Clone returns a copy that does not share the LastLogin pointer.
func (u *User) Clone() *User {
	c := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}
