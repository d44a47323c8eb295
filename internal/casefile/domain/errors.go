package domain

import "errors"

var (
	ErrDuplicateCase     = errors.New("duplicate_case")
	ErrCaseNotFound      = errors.New("case_not_found")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrExpiryNotFuture   = errors.New("appeal_expiry_not_future")
	ErrInvalidStatus     = errors.New("invalid_status")
)
