package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// MatchArguments checks the types of the arguments of a call against the parameter type of the function
// being called, and reports whether the arguments have to be packed into an unnamed structure to form the
// single argument. A nil parameter means the function takes no parameter.
//
// Rules:
//
//   - No parameter: no arguments are accepted.
//   - One argument: it is the argument itself, except if the parameter is a structure with one field and the
//     argument is not assignable to it, in which case it is packed as the single field.
//   - Two or more arguments: they are packed positionally into an unnamed structure.
//
// The argument (packed or not) must then be assignable to the parameter, otherwise a *TypeMismatchError
// is returned.
func MatchArguments(parameter Type, args ...Type) (pack bool, err error) {
	if IsNil(parameter) {
		if len(args) > 0 {
			return false, errors.WithStack(&TypeMismatchError{
				Source: ArgumentsType(args...),
				Reason: fmt.Sprintf("function takes no parameter, but %d argument(s) were given", len(args)),
			})
		}
		return false, nil
	}

	var source Type
	switch len(args) {
	case 0:
		return false, errors.WithStack(&TypeMismatchError{Target: parameter, Reason: "no argument given"})
	case 1:
		source = args[0]
		if st, ok := parameter.(*StructType); ok && st.Len() == 1 && !IsAssignableFrom(parameter, source) {
			pack = true
			source = Unnamed(args...)
		}
	default:
		pack = true
		source = Unnamed(args...)
	}
	if !IsAssignableFrom(parameter, source) {
		return false, errors.WithStack(&TypeMismatchError{Target: parameter, Source: source})
	}
	return pack, nil
}

// ArgumentsType returns the type of the argument formed by args, without any parameter to guide it:
// nil for no arguments, the type itself for one argument, and an unnamed structure otherwise.
func ArgumentsType(args ...Type) Type {
	switch len(args) {
	case 0:
		return nil
	case 1:
		return args[0]
	}
	return Unnamed(args...)
}
