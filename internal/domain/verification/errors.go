package verification

import "errors"

var (
	ErrCodeNotFound = errors.New("no code issued for subject")
	ErrCodeExpired  = errors.New("code has expired")
	ErrCodeMismatch = errors.New("code does not match")
)
