package domain

import "errors"

// Errors returned by the stores and the auth service. Handlers translate
// them; none of them are shown to users verbatim.
var (
	ErrUserAlreadyExists  = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user account is disabled")
	ErrNotFound           = errors.New("user not found")
	ErrIncidentCodeTaken  = errors.New("an incident with this code already exists")
)
