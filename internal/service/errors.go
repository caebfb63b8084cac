package service

import "errors"

var (
	ErrValidation         = errors.New("fill in all fields")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("action not allowed")
	ErrPayloadTooLarge    = errors.New("file exceeds the allowed size")
	ErrUpdateFailed       = errors.New("update could not be applied")
)

// Attachment is an uploaded file already read off the wire, decoupled from
// the transport so services can be exercised without HTTP.
type Attachment struct {
	Filename string
	Data     []byte
}
