package message

import "errors"

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyContent    = errors.New("message content must not be empty")
	ErrSelfMessage     = errors.New("sender and receiver must differ")
)
