package user

import (
	"strings"
)

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordenador Role = "coordenador"
	RoleProfessor   Role = "professor"
	RoleAluno       Role = "aluno"
	RoleNone        Role = ""
)

// NoRoleFilter is the role filter value selecting users without a role.
const NoRoleFilter = "sem-role"

var assignable = []Role{RoleAdmin, RoleCoordenador, RoleProfessor, RoleAluno}

func AssignableRoles() []Role {
	out := make([]Role, len(assignable))
	copy(out, assignable)
	return out
}

// ParseRole accepts one of the assignable role values, case-insensitively.
func ParseRole(value string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range assignable {
		if r == known {
			return r, nil
		}
	}
	return RoleNone, ErrInvalidRole
}

// DisplayName is the label shown in the users table and matched by the role filter.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleCoordenador:
		return "Coordenador"
	case RoleProfessor:
		return "Professor"
	case RoleAluno:
		return "Aluno"
	default:
		return "Sem role"
	}
}

// Label is the short capitalised name used in the role select and the users export.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleNone:
		return "N/A"
	default:
		return r.DisplayName()
	}
}

// BadgeClass is the CSS class of the role badge, e.g. "role-sem-role".
func (r Role) BadgeClass() string {
	return "role-" + strings.ReplaceAll(strings.ToLower(r.DisplayName()), " ", "-")
}

// FilterValue is the value of the role option in the users filter, e.g. "sem-role".
func (r Role) FilterValue() string {
	return strings.ReplaceAll(Lower(r.DisplayName()), " ", "-")
}
