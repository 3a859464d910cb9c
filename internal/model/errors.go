package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors. The three verification failures stay
	// distinguishable internally; the HTTP boundary collapses all of
	// them into a generic unauthenticated response.
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Photo related errors
	ErrPhotoNotFound = errors.New("photo not found")

	// Upload related errors
	ErrInvalidContentType = errors.New("content type is not an image")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
