package rewriting

import "fmt"

// APICallError represents a failure calling the text-generation or embedding service.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
