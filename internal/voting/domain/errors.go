package domain

import "errors"

var (
	ErrAlreadyVoted    = errors.New("already_voted")
	ErrAppealNotFound  = errors.New("appeal_not_found")
	ErrInvalidDecision = errors.New("invalid_decision")
)
