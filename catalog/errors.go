package catalog

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrCarNotFound         = errors.New("Car not found")
	ErrBrandNotFound       = errors.New("Brand not found")
	ErrDuplicateReview     = errors.New("You have already reviewed this car.")
	ErrUnauthenticated     = errors.New("Authentication required")
	ErrNotOwner            = errors.New("You should be the owner of this car.")
	ErrActiveSubscription  = errors.New("Car already has active subscription.")
	ErrInsufficientBalance = errors.New("Insufficient balance.")
)

// ValidationError carries per-field messages for malformed requests.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msg := "Invalid Request"
	for _, k := range keys {
		for _, m := range e.Fields[k] {
			msg += fmt.Sprintf("; %s: %s", k, m)
		}
	}
	return msg
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}
