package service

import (
	"errors"
	"fmt"
)

var (
	ErrInternal     = errors.New("internal server error")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("user is not authorized")
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrProvisioning = errors.New("failed to provision user")

	ErrInvalidOperation = fmt.Errorf("%w: you cannot follow yourself", ErrValidation)
	ErrEmptyComment     = fmt.Errorf("%w: comment cannot be empty", ErrValidation)
	ErrEmptyPost        = fmt.Errorf("%w: post must have content or an image", ErrValidation)
)
