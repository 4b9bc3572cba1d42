package services

import "errors"

var (
	ErrInvalidFilter      = errors.New("invalid filter")
	ErrInvalidListing     = errors.New("fill in all required fields")
	ErrJobNotFound        = errors.New("job not found")
	ErrForbidden          = errors.New("only the poster can change this listing")
	ErrInvalidAccount     = errors.New("please fill in all required fields")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("not logged in")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)
