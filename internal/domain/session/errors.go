package session

import "errors"

var (
	ErrNoSession  = errors.New("no active session")
	ErrBadRequest = errors.New("bad request")
)
