package computations

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
)

// Config is a "builder pattern" to configure how Go functions are wrapped into computations. It is created
// with NewLocal or NewFederated.
//
// Optionally set the parameter type (WithParameter) and the name (WithName), and then call Wrap with the
// Go function. A Config can wrap any number of functions.
type Config struct {
	kind Kind
	name string

	// declared is set by WithParameter: parameter is then the declared type, nil meaning no parameter.
	declared  bool
	parameter types.Type
	err       error
}

// NewLocal returns a Config to wrap Go functions into local computations.
func NewLocal() *Config {
	return &Config{kind: KindLocal}
}

// NewFederated returns a Config to wrap Go functions into federated computations.
func NewFederated() *Config {
	return &Config{kind: KindFederated}
}

// WithParameter declares the parameter type of the computations. Each expression is converted with
// types.ToType, and more than one expression (or a single types.Field) is collapsed into a structure type,
// one field per expression.
//
// Calling it with no expressions declares that the computations take no parameter.
// If it is not called, functions that take parameters are wrapped as polymorphic computations.
//
// It panics if called more than once. Errors converting the expressions are reported by Wrap.
//
// It returns itself (Config) to allow cascading configuration calls.
func (cfg *Config) WithParameter(exprs ...any) *Config {
	if cfg.declared {
		exceptions.Panicf("computations.Config.WithParameter called more than once")
	}
	cfg.declared = true
	cfg.parameter, cfg.err = parameterType(exprs)
	return cfg
}

// parameterType converts the declared parameter expressions to a type.
func parameterType(exprs []any) (types.Type, error) {
	switch len(exprs) {
	case 0:
		return nil, nil
	case 1:
		if _, isField := exprs[0].(types.Field); !isField {
			return types.ToType(exprs[0])
		}
	}
	return types.TupleToType(exprs...)
}

// WithName sets the name of the computations. By default, the name of the wrapped Go function is used.
//
// It returns itself (Config) to allow cascading configuration calls.
func (cfg *Config) WithName(name string) *Config {
	cfg.name = name
	return cfg
}

// Wrap the Go function fn into a computation.
//
// fn must take a fixed number of parameters, and return one value, or one value and an error. If the
// parameter type was declared, fn must take either one parameter, or one parameter per field of the
// declared structure type.
//
// The parameters of federated bodies must accept *trace.Value.
//
// It returns a *DeclarationError if fn can not be wrapped.
func (cfg *Config) Wrap(fn any) (*Computation, error) {
	c := &Computation{kind: cfg.kind, name: cfg.name}
	body, err := newNative(fn)
	if err != nil {
		return nil, declarationError(c, "invalid function", err)
	}
	c.body = body
	if c.name == "" {
		c.name = funcName(body.fn)
	}
	if cfg.err != nil {
		return nil, declarationError(c, "invalid parameter type", cfg.err)
	}
	if c.kind == KindFederated {
		for i := range body.arity() {
			if !valueType.AssignableTo(body.t.In(i)) {
				return nil, errors.WithStack(&DeclarationError{
					Computation: c.name,
					Reason:      "parameters of federated computations must accept *trace.Value, got " + body.t.In(i).String(),
				})
			}
		}
	}

	if !cfg.declared && body.arity() > 0 {
		// Polymorphic: bound on each call.
		c.bindings = make(map[string]*Computation)
		return c, nil
	}
	bound, err := c.bind(cfg.parameter, true)
	if err != nil {
		return nil, declarationError(c, "failed to bind", err)
	}
	return bound, nil
}

// MustWrap is the same as Wrap, but it panics on error.
func (cfg *Config) MustWrap(fn any) *Computation {
	c, err := cfg.Wrap(fn)
	if err != nil {
		exceptions.Panicf("%+v", err)
	}
	return c
}

// declarationError returns err if it already is a *DeclarationError, or wraps it into one.
func declarationError(c *Computation, reason string, err error) error {
	var declErr *DeclarationError
	if errors.As(err, &declErr) {
		return err
	}
	return errors.WithStack(&DeclarationError{Computation: c.name, Reason: reason, Cause: err})
}

// newConfig returns a Config for kind, with the parameter declared only if exprs are given.
func newConfig(kind Kind, exprs []any) *Config {
	cfg := &Config{kind: kind}
	if len(exprs) > 0 {
		cfg.WithParameter(exprs...)
	}
	return cfg
}

// Local wraps fn into a local computation: see Config.Wrap.
//
// The parameter expressions (see Config.WithParameter) are optional: if none are given and fn takes
// parameters, the computation is polymorphic. Use NewLocal().WithParameter() to explicitly declare that
// the computation takes no parameter.
func Local(fn any, parameter ...any) (*Computation, error) {
	return newConfig(KindLocal, parameter).Wrap(fn)
}

// MustLocal is the same as Local, but it panics on error.
func MustLocal(fn any, parameter ...any) *Computation {
	return newConfig(KindLocal, parameter).MustWrap(fn)
}

// Federated wraps fn into a federated computation: see Config.Wrap.
// The parameter expressions are optional, see Local.
func Federated(fn any, parameter ...any) (*Computation, error) {
	return newConfig(KindFederated, parameter).Wrap(fn)
}

// MustFederated is the same as Federated, but it panics on error.
func MustFederated(fn any, parameter ...any) *Computation {
	return newConfig(KindFederated, parameter).MustWrap(fn)
}
