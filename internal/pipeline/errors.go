package pipeline

import "fmt"

// MissingFieldError indicates a required request input was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}
