package apperrors

import (
	"errors"
)

var (
	ErrEmptySecret = errors.New("secret must not be empty")

	ErrMalformedToken   = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")

	ErrExpiredToken        = errors.New("token is expired")
	ErrTokenNotRefreshable = errors.New("token can't be refreshed")
)
