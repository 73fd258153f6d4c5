package computations

import "fmt"

// DeclarationError is returned when a Go function can not be wrapped as a computation with the declared
// parameter type: it is detected when wrapping, before any call.
type DeclarationError struct {
	// Computation is the name of the computation being declared.
	Computation string

	// Reason describes what is wrong with the declaration.
	Reason string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements error.
func (e *DeclarationError) Error() string {
	msg := fmt.Sprintf("invalid declaration of computation %q: %s", e.Computation, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the Cause, so errors.Is and errors.As can inspect it.
func (e *DeclarationError) Unwrap() error {
	return e.Cause
}
