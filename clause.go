package try

import (
	"context"

	"github.com/pkg/errors"
)

// Handler handles the failure of a Do block. Returning nil recovers,
// returning r.Restart() runs the block again, and any other error
// propagates to the caller.
type Handler func(ctx context.Context, err error, r *Restarter) error

// ValueHandler handles the failure of a value-producing block. Its result
// replaces the block's result.
type ValueHandler[T any] func(ctx context.Context, err error, r *Restarter) (T, error)

// Finalizer runs once when the invocation is left, however it is left.
type Finalizer func(ctx context.Context) error

// Catch returns the catch clause for Do and Policy.Do.
func Catch(h Handler) Option {
	return func(c *config) {
		c.setHandler(h, h == nil)
	}
}

// CatchValue returns the catch clause for Get (ValueHandler[T]), and for
// Collect and First (ValueHandler[[]T]).
func CatchValue[T any](h ValueHandler[T]) Option {
	return func(c *config) {
		c.setHandler(h, h == nil)
	}
}

// Finally adds a finalizer. Finalizers run in the order they were given.
func Finally(f Finalizer) Option {
	return func(c *config) {
		if f == nil {
			c.fail(errors.Wrapf(ErrUnknownArgument, "nil %T", f))
			return
		}
		c.finalizers = append(c.finalizers, f)
	}
}

func (c *config) setHandler(h any, isNil bool) {
	switch {
	case isNil:
		c.fail(errors.Wrapf(ErrUnknownArgument, "nil %T", h))
	case c.handler != nil:
		c.fail(errors.WithStack(ErrDuplicateCatch))
	default:
		c.handler = h
	}
}

// resolveHandler matches the configured handler against the arity of the
// entry point. A handler of another arity is a usage error.
func resolveHandler[T any](h any) (ValueHandler[T], error) {
	switch fn := h.(type) {
	case nil:
		return nil, nil
	case ValueHandler[T]:
		return fn, nil
	case Handler:
		if _, void := any(*new(T)).(struct{}); void {
			return func(ctx context.Context, err error, r *Restarter) (T, error) {
				var zero T
				return zero, fn(ctx, err, r)
			}, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownArgument, "%T in catch position", h)
}
