package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user_not_found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidRole  = errors.New("invalid_role")
)
