package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex is returned when a question index is outside the test.
var ErrInvalidIndex = errors.New("invalid question index")

// LoadError reports a test definition that could not be read, parsed or validated.
// It is fatal to session start.
type LoadError struct {
	Source string
	Err    error
}

func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load test definition %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}

func IsInvalidIndex(err error) bool {
	return errors.Is(err, ErrInvalidIndex)
}
