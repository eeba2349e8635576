package errors

import "errors"

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrTokenNotFound    = errors.New("subscription token not found")
	ErrAlreadyConfirmed = errors.New("subscription already confirmed")
)
