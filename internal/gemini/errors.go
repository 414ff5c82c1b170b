package gemini

import "fmt"

// TransportError reports a non-2xx HTTP status from the generation service.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation request failed with status %d: %s", e.StatusCode, e.Body)
}

// ResponseShapeError reports a successful HTTP response whose body is missing
// an expected field or carries one that cannot be decoded.
type ResponseShapeError struct {
	Field string
	Err   error
}

func (e *ResponseShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response shape at %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("unexpected response shape: missing %s", e.Field)
}

func (e *ResponseShapeError) Unwrap() error {
	return e.Err
}
