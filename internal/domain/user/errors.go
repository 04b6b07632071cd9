package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPhoneTaken   = errors.New("phone number already registered")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidRole  = errors.New("invalid user role")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)
