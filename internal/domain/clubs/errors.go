package clubs

import "errors"

var (
	ErrNoSession  = errors.New("no active session")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)
