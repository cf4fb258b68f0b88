package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
		contains    bool
	}{
		{"No errors", []FieldError{}, "validation error", false},
		{"Single error", []FieldError{{Field: "text", Message: "is required"}}, "validation error for field 'text': is required", false},
		{"Multiple errors", []FieldError{
			{Field: "text", Message: "is required"},
			{Field: "priority", Message: "is unknown"},
		}, "multiple validation errors", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.contains {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else if result != tt.expectError {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_ErrOrNil(t *testing.T) {
	ve := NewValidationError()
	if err := ve.ErrOrNil(); err != nil {
		t.Errorf("ErrOrNil() = %v, expected nil for empty error", err)
	}

	ve.AddRequiredError("text")
	if err := ve.ErrOrNil(); err == nil {
		t.Error("ErrOrNil() = nil, expected error")
	}
}

func TestValidationError_AddHelpers(t *testing.T) {
	tests := []struct {
		name     string
		add      func(ve *ValidationError)
		wantType ValidationErrorType
		wantMsg  string
	}{
		{"required", func(ve *ValidationError) { ve.AddRequiredError("text") }, ErrorTypeRequired, "text is required"},
		{"format", func(ve *ValidationError) { ve.AddInvalidFormatError("due", "x", "YYYY-MM-DD") }, ErrorTypeInvalidFormat, "due has invalid format, expected: YYYY-MM-DD"},
		{"value", func(ve *ValidationError) { ve.AddInvalidValueError("priority", "urgent", "unknown") }, ErrorTypeInvalidValue, "priority has invalid value: unknown"},
		{"duplicate", func(ve *ValidationError) { ve.AddDuplicateError("id", "a1") }, ErrorTypeDuplicate, "id a1 appears more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			tt.add(ve)

			if len(ve.Errors) != 1 {
				t.Fatalf("Expected 1 error, got %d", len(ve.Errors))
			}
			if ve.Errors[0].Type != tt.wantType {
				t.Errorf("Expected error type %v, got %v", tt.wantType, ve.Errors[0].Type)
			}
			if ve.Errors[0].Message != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, ve.Errors[0].Message)
			}
		})
	}
}

func TestValidationError_Merge(t *testing.T) {
	inner := NewValidationError()
	inner.AddRequiredError("id")
	inner.AddRequiredError("text")

	ve := NewValidationError()
	ve.Merge("[2]", inner)
	ve.Merge("[3]", nil)
	ve.Merge("[4]", fmt.Errorf("not a validation error"))

	if len(ve.Errors) != 2 {
		t.Fatalf("Expected 2 merged errors, got %d", len(ve.Errors))
	}
	if ve.Errors[0].Field != "[2].id" {
		t.Errorf("Expected prefixed field '[2].id', got %s", ve.Errors[0].Field)
	}
	if inner.Errors[0].Field != "id" {
		t.Errorf("Merge modified the source error: %s", inner.Errors[0].Field)
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()

	ve.AddRequiredError("text")
	ve.AddInvalidFormatError("text", "a", "plain text")
	ve.AddRequiredError("priority")

	if got := len(ve.GetFieldErrors("text")); got != 2 {
		t.Errorf("Expected 2 errors for 'text', got %d", got)
	}
	if got := len(ve.GetFieldErrors("priority")); got != 1 {
		t.Errorf("Expected 1 error for 'priority', got %d", got)
	}
	if got := len(ve.GetFieldErrors("missing")); got != 0 {
		t.Errorf("Expected 0 errors for 'missing', got %d", got)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected string
	}{
		{"No errors", []FieldError{}, "Input validation failed"},
		{"Single error", []FieldError{{Field: "text", Message: "text is required"}}, "text is required"},
		{"Multiple errors", []FieldError{
			{Field: "text", Message: "text is required"},
			{Field: "priority", Message: "priority is unknown"},
		}, "Multiple validation errors occurred:\n- text is required\n- priority is unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			if result := ve.GetUserFriendlyMessage(); result != tt.expected {
				t.Errorf("GetUserFriendlyMessage() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("text")

	if !IsValidationError(ve) {
		t.Errorf("IsValidationError() = false, expected true for ValidationError")
	}
	if !IsValidationError(fmt.Errorf("wrapped: %w", ve)) {
		t.Errorf("IsValidationError() = false, expected true for wrapped ValidationError")
	}

	regularError := &FieldError{Field: "test", Message: "error"}
	if IsValidationError(regularError) {
		t.Errorf("IsValidationError() = true, expected false for regular error")
	}
}
