package try

import (
	"context"
	"runtime/debug"

	"go.uber.org/multierr"
)

// guard runs the finalizers of one invocation. It is released exactly once,
// from a defer in run, after every attempt has finished.
type guard struct {
	ctx context.Context
	cfg *config
}

// release runs each finalizer and folds its failure into *err. The last
// failure wins unless errors are joined, and a usage error already in
// flight is never replaced.
//
// A panic unwinding through the invocation is recorded as a *PanicError
// for the finalizers' failures and the OnFinally hooks, then resumed with
// its original value.
func (g guard) release(err *error) {
	r := recover()
	panicking := r != nil
	if panicking {
		*err = &PanicError{Value: r, Stack: debug.Stack()}
	}

	for _, f := range g.cfg.finalizers {
		_, ferr, failed := capture(g.ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, f(ctx)
		}, g.cfg.propagatePanics)
		if !failed {
			continue
		}
		if _, ok := restartOwner(ferr); ok {
			ferr = restartMisuse()
		}
		switch {
		case *err == nil:
			*err = ferr
		case panicking || g.cfg.joinErrors || IsUsage(*err):
			*err = multierr.Append(*err, ferr)
		default:
			*err = ferr
		}
	}
	for _, fn := range g.cfg.onFinally {
		fn(g.ctx, *err)
	}

	if panicking {
		panic(r)
	}
}
