package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrIDMismatch    = fmt.Errorf("%w: path id does not match payload id", ErrInvalidInput)
	ErrUnknownClient = fmt.Errorf("%w: referenced client does not exist", ErrInvalidInput)

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrInvalidCredentials)
	ErrWrongPassword      = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	ErrOrderNotFound  = errors.New("order not found")
	ErrClientNotFound = errors.New("client not found")
	ErrForbidden      = errors.New("access forbidden")
)
