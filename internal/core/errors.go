package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeInvalidReference = "invalid_reference"
	ErrCodeIndexOutOfRange  = "index_out_of_range"
	ErrCodeNotInRoom        = "not_in_room"
	ErrCodeBadRequest       = "bad_request"
)

var (
	ErrInvalidReference = errors.New("invalid media reference")
	ErrIndexOutOfRange  = errors.New("queue index out of range")
	ErrNotInRoom        = errors.New("not in room")
	ErrBadRequest       = errors.New("bad request")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
