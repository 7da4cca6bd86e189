package try

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
)

// Throw fails the current block with v. Any value is accepted, including nil
// and other zero values; the runner treats the block as failed either way.
//
// A non-nil error is delivered to the handler as is. Any other value is
// delivered wrapped in a *Thrown.
func Throw(v any) {
	panic(thrown{value: v})
}

// thrown is the panic payload used by Throw.
type thrown struct {
	value any
}

// Thrown carries a non-error value raised with Throw.
type Thrown struct {
	Value any
}

func (t *Thrown) Error() string {
	return fmt.Sprintf("try: thrown %#v", t.Value)
}

// PanicError carries a panic that did not come from Throw.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("try: panic: %v", p.Value)
}

// Unwrap returns the panic value when it is an error.
func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// ValueOf returns the original failure value behind err: the value given to
// Throw, the value given to panic, or err itself.
func ValueOf(err error) any {
	var t *Thrown
	if errors.As(err, &t) {
		return t.Value
	}
	var p *PanicError
	if errors.As(err, &p) {
		return p.Value
	}
	return err
}

// capture evaluates fn in isolation. Failure is reported through the failed
// flag, set when fn returns a non-nil error or does not return normally.
// The failure value itself is never tested.
func capture[T any](ctx context.Context, fn func(context.Context) (T, error), propagatePanics bool) (v T, err error, failed bool) {
	returned := false
	defer func() {
		if returned {
			return
		}
		r := recover()
		var zero T
		v, failed = zero, true
		switch p := r.(type) {
		case thrown:
			if e, ok := p.value.(error); ok && e != nil {
				err = e
				return
			}
			err = &Thrown{Value: p.value}
		default:
			if propagatePanics && r != nil {
				panic(r)
			}
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	v, err = fn(ctx)
	returned = true
	return v, err, err != nil
}
