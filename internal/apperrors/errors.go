package apperrors

import (
	"errors"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDocumentNotFound = errors.New("document not found")

	// Any persistence failure must match ErrStorage
	ErrStorage             = errors.New("storage error")
	ErrConstraintViolation = errors.New("constraint violation")

	ErrConfiguration = errors.New("configuration error")

	// All token verification failures match ErrUnauthorized as well
	ErrUnauthorized          = errors.New("unauthorized")
	ErrTokenExpired          = authError("token is expired")
	ErrTokenSignatureInvalid = authError("token signature is invalid")
	ErrTokenMalformed        = authError("token is malformed")
)

type authErr struct {
	msg string
}

func authError(msg string) error {
	return &authErr{msg: msg}
}

func (e *authErr) Error() string {
	return e.msg
}

func (e *authErr) Is(target error) bool {
	return target == ErrUnauthorized
}
