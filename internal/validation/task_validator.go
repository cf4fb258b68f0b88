package validation

import (
	"fmt"
	"strings"

	"task-list/internal/domain"
	"task-list/internal/storage"
)

// TaskValidator provides validation for task input and persisted task records
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithLimits creates a task validator with a configured text length limit
func NewTaskValidatorWithLimits(textMaxLength int) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithLimits(textMaxLength),
	}
}

// SanitizeText turns any input into storable task text; see Validator.SanitizeText.
func (tv *TaskValidator) SanitizeText(text string) string {
	return tv.validator.SanitizeText(text)
}

// ValidatePriority validates a priority given as text. Empty input is allowed and means the default.
func (tv *TaskValidator) ValidatePriority(priority string) error {
	if strings.TrimSpace(priority) == "" || tv.validator.IsValidPriority(priority) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError("priority", priority, "must be one of high, medium, low")
	return validationError
}

// ValidateFilter validates a category filter given as text
func (tv *TaskValidator) ValidateFilter(filter string) error {
	if tv.validator.IsValidFilter(filter) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError("filter", filter, "must be one of all, active, completed, high, medium, low")
	return validationError
}

// ValidateDueShorthand validates relative due date input
func (tv *TaskValidator) ValidateDueShorthand(shorthand string) error {
	if tv.validator.IsValidDueShorthand(shorthand) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidFormatError("due", shorthand, "a positive number followed by d, w, mo or y")
	return validationError
}

// ParseDueShorthand parses relative due date input. matched is false when the
// input is not shorthand at all; a shorthand that is not usable, such as "0d",
// is a validation error.
func (tv *TaskValidator) ParseDueShorthand(input string) (offset DueOffset, matched bool, err error) {
	offset, matched = tv.validator.MatchDueShorthand(input)
	if !matched {
		return DueOffset{}, false, nil
	}
	if err := tv.ValidateDueShorthand(input); err != nil {
		return DueOffset{}, true, err
	}
	return offset, true, nil
}

// ValidateRecord checks that a persisted record has every field a task needs
func (tv *TaskValidator) ValidateRecord(record storage.TaskRecord) error {
	validationError := NewValidationError()

	if record.ID == "" {
		validationError.AddRequiredError("id")
	}
	if !tv.validator.IsNonEmptyString(record.Text) {
		validationError.AddRequiredError("text")
	}
	if !domain.Priority(record.Priority).IsValid() {
		validationError.AddInvalidValueError("priority", record.Priority, "must be one of high, medium, low")
	}
	if record.CreatedAt.IsZero() {
		validationError.AddRequiredError("createdAt")
	}

	return validationError.ErrOrNil()
}

// ValidateRecords checks every record and that no id is used twice
func (tv *TaskValidator) ValidateRecords(records []storage.TaskRecord) error {
	validationError := NewValidationError()
	seen := make(map[string]bool, len(records))

	for i, record := range records {
		validationError.Merge(fmt.Sprintf("[%d]", i), tv.ValidateRecord(record))

		if record.ID == "" {
			continue
		}
		if seen[record.ID] {
			validationError.AddDuplicateError(fmt.Sprintf("[%d].id", i), record.ID)
		}
		seen[record.ID] = true
	}

	return validationError.ErrOrNil()
}
