package composing

import (
	"fmt"
	"strings"
)

// ComposeError indicates that resume composition failed on every attempt.
// Failures carries the itemized validation failures from all attempts.
type ComposeError struct {
	Message  string
	Failures []string
	Cause    error
}

func (e *ComposeError) Error() string {
	if len(e.Failures) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Failures, "; "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ComposeError) Unwrap() error {
	return e.Cause
}
