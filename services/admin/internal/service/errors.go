package service

import "errors"

var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidActivationKey = errors.New("invalid activation key")
	ErrWrongPassword        = errors.New("current password is incorrect")
)
