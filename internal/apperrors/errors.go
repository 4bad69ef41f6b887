package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCredentials is the single error returned for every failed login.
// Callers must not distinguish unknown usernames from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUnauthorized indicates a missing, expired or revoked session token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the operation cannot run in the current state (e.g. a login already in progress).
var ErrConflict = errors.New("conflict")

// ErrSlotAbsent is returned by slot stores when nothing was ever saved under a slot.
var ErrSlotAbsent = errors.New("slot absent")

// ErrUnavailable wraps storage and remote-call failures.
var ErrUnavailable = errors.New("service unavailable")
