package services

import "errors"

var (
	ErrPasswordMismatch   = errors.New("password and confirmation differ")
	ErrDoctorExists       = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrNotOwner           = errors.New("patient belongs to another doctor")
)
