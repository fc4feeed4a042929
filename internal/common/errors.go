// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound          = errors.New("not found")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Document errors.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("document has no header row")

	// Encryption errors.
	ErrMissingEncryptionKey = errors.New("encryption key not configured")
	ErrDecryptionFailed     = errors.New("decryption failed")

	// Recommendation errors.
	ErrNoCredential     = errors.New("no model credential configured")
	ErrUnusableResponse = errors.New("model response is not a usable recommendation list")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DocumentParseError reports a structurally unreadable uploaded document.
// It is a client-input fault; nothing derived from the document is persisted.
type DocumentParseError struct {
	Err      error
	Filename string
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("error processing file %s: %v", e.Filename, e.Err)
}

func (e *DocumentParseError) Unwrap() error {
	return e.Err
}

// NewDocumentParseError wraps a parse failure for the named document.
func NewDocumentParseError(filename string, err error) error {
	return &DocumentParseError{
		Filename: filename,
		Err:      err,
	}
}

// IsDocumentParseError reports whether err is or wraps a DocumentParseError.
func IsDocumentParseError(err error) bool {
	var parseErr *DocumentParseError
	return errors.As(err, &parseErr)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
