package application

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrNotFound is returned when the requested configuration does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a configuration identifier is already taken.
	ErrAlreadyExists = errors.New("application: already exists")
)

// ValidationError collects problems with the envelope of a configuration
// request, keyed by JSON field path. Problems with the recurrence rule itself
// are reported as *recurrence.ScheduleError instead.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error lists the offending fields in sorted order.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	if len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(v.Fields(), ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Fields returns the offending field paths, sorted.
func (v *ValidationError) Fields() []string {
	if v == nil {
		return nil
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// add records a problem with field. The first message for a field is kept.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, exists := v.FieldErrors[field]; exists {
		return
	}
	v.FieldErrors[field] = message
}
