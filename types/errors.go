package types

import "fmt"

// TypeMismatchError is returned when a value of type Source is offered where Target is expected, and
// Target is not assignable from Source. Arity errors (wrong number of arguments) are also reported with it.
type TypeMismatchError struct {
	// Target is the expected type. It may be nil, if nothing was expected.
	Target Type

	// Source is the type offered. It may be nil, if nothing was offered.
	Source Type

	// Reason, if set, is appended to the message.
	Reason string
}

// Error implements error.
func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("type %s is not assignable from source type %s", describe(e.Target), describe(e.Source))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func describe(t Type) string {
	if IsNil(t) {
		return "<none>"
	}
	return t.String()
}
