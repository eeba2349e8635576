package errors

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidRole     = errors.New("role must be patient or professional")
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
	ErrMissingLicense  = errors.New("professional registration requires a license number")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already registered")
	ErrNotPending      = errors.New("account has no pending approval request")
	ErrNotRejected     = errors.New("account has no rejected application to renew")
)
