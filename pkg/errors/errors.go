package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("invalid phone or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidUserRole   = errors.New("invalid user role")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrWeakPassword = errors.New("password does not meet requirements")

	ErrCodeExpired = errors.New("verification code has expired")
	ErrCodeInvalid = errors.New("verification code does not match")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
