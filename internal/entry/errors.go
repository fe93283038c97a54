package entry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrItemNotFound = errors.New("inventory item not found")
)

// ValidationError lists form violations keyed by JSON field name.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
