package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling

var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingCredential indicates a required credential is not configured
	ErrMissingCredential = errors.New("missing credential")

	// ErrServiceUnavailable indicates a required service is unavailable
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrDatabaseOperation indicates a database operation failed
	ErrDatabaseOperation = errors.New("database operation failed")

	// ErrLLMCommunication indicates LLM communication failed
	ErrLLMCommunication = errors.New("llm communication failed")

	// ErrUnsupportedFileType indicates an upload with an extension the ingest
	// pipeline does not handle
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// WrapError wraps an error with context message
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMissingCredential checks if error is a missing credential error
func IsMissingCredential(err error) bool {
	return errors.Is(err, ErrMissingCredential)
}

// IsLLMCommunication checks if error is an LLM communication error
func IsLLMCommunication(err error) bool {
	return errors.Is(err, ErrLLMCommunication)
}
