package cli

import (
	"strings"
	"time"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/validation"
)

const dueDateLayout = "2006-01-02"

// parseDueDate turns --due input into a calendar date relative to now.
// Accepted forms are YYYY-MM-DD, "today", "tomorrow" and shorthand like 3d, 2w, 1mo or 1y.
// Empty input means no due date.
func parseDueDate(input string, now time.Time, v *validation.TaskValidator) (*time.Time, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	today := domain.DateOnly(now)

	var due time.Time
	switch {
	case value == "":
		return nil, nil
	case value == "today":
		due = today
	case value == "tomorrow":
		due = today.AddDate(0, 0, 1)
	default:
		offset, matched, err := v.ParseDueShorthand(value)
		if err != nil {
			return nil, err
		}
		if matched {
			due = offset.Apply(today)
			break
		}

		parsed, err := time.ParseInLocation(dueDateLayout, value, time.UTC)
		if err != nil {
			return nil, errors.NewInvalidInputError("due", input,
				"use YYYY-MM-DD, today, tomorrow or a shorthand like 3d, 2w, 1mo")
		}
		due = parsed
	}

	return &due, nil
}
