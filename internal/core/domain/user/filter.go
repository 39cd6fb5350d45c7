package user

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	StatusActive   = "ativo"
	StatusInactive = "inativo"
)

// Filter is the users page query: free-text search, role and status.
type Filter struct {
	Search string
	Role   string
	Status string
}

func NewFilter(search, role, status string) Filter {
	return Filter{
		Search: strings.TrimSpace(search),
		Role:   strings.TrimSpace(role),
		Status: Lower(strings.TrimSpace(status)),
	}
}

func (f Filter) IsZero() bool {
	return f.Search == "" && f.Role == "" && f.Status == ""
}

// ActiveOnly reports the status constraint: nil when any status is accepted.
func (f Filter) ActiveOnly() *bool {
	switch f.Status {
	case StatusActive:
		v := true
		return &v
	case StatusInactive:
		v := false
		return &v
	default:
		return nil
	}
}

// RoleName is the role filter normalised to a display name in lower case:
// "sem-role" becomes "sem role".
func (f Filter) RoleName() string {
	return Lower(strings.ReplaceAll(f.Role, "-", " "))
}

func (f Filter) Matches(u *User) bool {
	if f.Search != "" {
		needle := Lower(f.Search)
		if !containsAny(needle, u.Username, u.FirstName, u.LastName, u.Email) {
			return false
		}
	}

	if active := f.ActiveOnly(); active != nil && u.Active != *active {
		return false
	}

	if f.Role != "" && f.RoleName() != Lower(u.Role.DisplayName()) {
		return false
	}

	return true
}

func containsAny(needle string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(Lower(field), needle) {
			return true
		}
	}
	return false
}

// Lower folds s the way the users filter compares values. A Caser keeps
// state, so one is built per call.
func Lower(s string) string {
	return cases.Lower(language.BrazilianPortuguese).String(s)
}

// RoleValue resolves the role filter to a role. ok is false when the filter
// names no known role, in which case nothing matches.
func (f Filter) RoleValue() (role Role, ok bool) {
	name := f.RoleName()
	for _, r := range append(AssignableRoles(), RoleNone) {
		if Lower(r.DisplayName()) == name {
			return r, true
		}
	}
	return RoleNone, false
}
