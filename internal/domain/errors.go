package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation failed")
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrInvalidTier       = errors.New("invalid subscription tier")
	ErrUnknownCapability = errors.New("unknown capability")
	ErrProviderFailure   = errors.New("provider failure")
)
