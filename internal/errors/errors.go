package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrMultipleValues  = errors.New("multiple values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	ErrorTypeInvalidFormat   ErrorType = "invalid_format"
	ErrorTypeDepthExceeded   ErrorType = "depth_exceeded"
	ErrorTypeInput           ErrorType = "input"
	ErrorTypeOutput          ErrorType = "output"
	ErrorTypeConfig          ErrorType = "config"
	ErrorTypeUnknown         ErrorType = "unknown"
)

// Kind sentinels. Any *AppError of the same type matches them with errors.Is.
var (
	ErrInvalidArgument = &AppError{Type: ErrorTypeInvalidArgument, Message: "invalid argument"}
	ErrInvalidFormat   = &AppError{Type: ErrorTypeInvalidFormat, Message: "invalid format"}
	ErrDepthExceeded   = &AppError{Type: ErrorTypeDepthExceeded, Message: "maximum depth exceeded"}
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInvalidArgumentError creates an error for nil or wrongly shaped input values
func NewInvalidArgumentError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: message,
		Err:     err,
	}
}

// NewInvalidFormatError creates an error for text that cannot be deserialized
func NewInvalidFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidFormat,
		Message: message,
		Err:     err,
	}
}

// NewDepthExceededError creates an error for input nested deeper than the configured limit
func NewDepthExceededError(limit int) *AppError {
	return &AppError{
		Type:    ErrorTypeDepthExceeded,
		Message: fmt.Sprintf("nesting exceeds maximum depth of %d", limit),
	}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// Cause returns the innermost error that is not an *AppError. If the chain
// holds only AppErrors, the message of the deepest one is returned as a plain error.
func Cause(err error) error {
	var last *AppError
	for err != nil {
		appErr, ok := err.(*AppError)
		if !ok {
			return err
		}
		last = appErr
		err = appErr.Err
	}
	if last == nil {
		return nil
	}
	return errors.New(last.Message)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInvalidArgument:
			return fmt.Sprintf("Invalid argument: %s", appErr.Message)
		case ErrorTypeInvalidFormat:
			return fmt.Sprintf("Invalid format: %s", detail(appErr))
		case ErrorTypeDepthExceeded:
			return fmt.Sprintf("Input too deep: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", detail(appErr))
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide some data."
	}
	if errors.Is(err, ErrMultipleValues) {
		return "Error: Multiple values found. Please provide a single document."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}

func detail(e *AppError) string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%v)", e.Message, Cause(e))
}
