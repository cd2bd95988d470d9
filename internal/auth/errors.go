package auth

import "github.com/pkg/errors"

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
