package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidConfirmCode = errors.New("invalid confirmation code")
	ErrConfirmCodeExpired = errors.New("confirmation code expired")
	ErrNoPendingEmail     = errors.New("no pending email change")
)
