package players

import "errors"

var (
	ErrNoSession = errors.New("no active session")
	ErrNotFound  = errors.New("not found")
)
