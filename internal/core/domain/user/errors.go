package user

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidUserID  = errors.New("invalid user id")
	ErrNotSSOLinked   = errors.New("user has no SSO link")
	ErrInvalidProfile = errors.New("invalid user data")
)

// MsgInvalidRole is shown when a role change names no assignable role.
const MsgInvalidRole = "Selecione uma role válida."

type UsernameTakenError struct {
	Username string
}

func (e *UsernameTakenError) Error() string {
	return fmt.Sprintf("A matrícula '%s' já está em uso por outro usuário.", e.Username)
}
