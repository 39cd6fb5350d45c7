package memory

import "errors"

var (
	ErrNotFound      = errors.New("memory: record not found")
	ErrAlreadyExists = errors.New("memory: record already exists")
)
