package errors

import (
	"errors"
	"fmt"
)

// Error codes carried by AppError.Code
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeStorage          = "STORAGE_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeCorruptData      = "CORRUPT_DATA"
	CodeTimeout          = "TIMEOUT"
	CodeUnknown          = "UNKNOWN_ERROR"
)

func newAppError(errorType ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    code,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, CodeValidationFailed, message, cause)
}

// NewNotFoundError reports a missing resource, such as a slot row that was never written.
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, CodeNotFound, fmt.Sprintf("%s not found: %s", resource, identifier), nil).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewStorageError creates a new error for a failed read or write of a storage slot
func NewStorageError(operation string, slot string, cause error) *AppError {
	return newAppError(ErrorTypeStorage, CodeStorage, fmt.Sprintf("storage operation failed: %s %s", operation, slot), cause).
		WithContext("operation", operation).
		WithContext("slot", slot)
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, CodeInvalidInput, fmt.Sprintf("invalid input for %s: %s", field, reason), nil).
		WithContext("field", field).
		WithContext("value", value).
		WithContext("reason", reason)
}

// NewCorruptDataError creates a new error for persisted content that cannot be decoded
func NewCorruptDataError(source string, cause error) *AppError {
	return newAppError(ErrorTypeCorruptData, CodeCorruptData, fmt.Sprintf("persisted data is not a valid task list: %s", source), cause).
		WithContext("source", source)
}

// NewTimeoutError reports a slot write that did not finish before its deadline.
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newAppError(ErrorTypeTimeout, CodeTimeout, fmt.Sprintf("operation timed out: %s", operation), nil).
		WithContext("operation", operation).
		WithContext("timeout", timeout)
}

// WrapError wraps err in an AppError of the given type. The code is the type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newAppError(errorType, errorType.String(), message, err)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeStorage:
			return "Your tasks could not be saved. Check that the storage location is writable and has free space."
		case ErrorTypeCorruptData:
			return "The saved task list could not be read."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeUnknown
}

// ShouldLogError reports whether err is worth a debug log line.
// Mistakes in user input are not.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return false
	default:
		return true
	}
}
