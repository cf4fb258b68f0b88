package domain

import "strings"

// Filter is the category a task list view is restricted to.
// Exactly one filter is active at a time.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterHigh      Filter = "high"
	FilterMedium    Filter = "medium"
	FilterLow       Filter = "low"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterHigh, FilterMedium, FilterLow}

// IsValid reports whether f is a known filter.
func (f Filter) IsValid() bool {
	for _, known := range Filters {
		if f == known {
			return true
		}
	}
	return false
}

// Priority returns the priority a priority filter selects on.
func (f Filter) Priority() (Priority, bool) {
	switch f {
	case FilterHigh:
		return PriorityHigh, true
	case FilterMedium:
		return PriorityMedium, true
	case FilterLow:
		return PriorityLow, true
	}
	return "", false
}

// Label returns a human readable name for the filter.
func (f Filter) Label() string {
	if p, ok := f.Priority(); ok {
		return p.Label() + " Priority"
	}
	return Priority(f).Label()
}

// ParseFilter converts user input into a Filter. An empty string selects FilterAll.
func ParseFilter(s string) (Filter, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, true
	}
	f := Filter(s)
	return f, f.IsValid()
}
