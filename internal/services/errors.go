package services

import (
	"errors"
)

// Failure taxonomy surfaced to the handler layer. Handlers map these to HTTP
// statuses; services never format responses.
var (
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("requester does not own the target")
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("concurrent mutation conflict")
)
