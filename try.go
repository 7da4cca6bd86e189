package try

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Func is a protected block that produces no value.
type Func func(ctx context.Context) error

// ValueFunc is a protected block that produces a value.
type ValueFunc[T any] func(ctx context.Context) (T, error)

// Policy is a reusable set of options. Safe for concurrent use.
type Policy struct {
	opts []Option
}

// New creates a Policy with the given options.
func New(opts ...Option) *Policy {
	return &Policy{opts: slices.Clone(opts)}
}

// Do runs fn under this policy, with opts applied after the policy's own.
func (p *Policy) Do(ctx context.Context, fn Func, opts ...Option) error {
	return Do(ctx, fn, append([]Option{Use(p)}, opts...)...)
}

// Do runs fn as a protected block that produces no value.
//
// Without a catch clause a failure of fn is discarded and Do returns nil.
// With one, the handler decides: recover, restart, or fail.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	if fn == nil {
		return errors.Wrap(ErrUnknownArgument, "nil block")
	}
	_, err := run(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, opts)
	return err
}

// Get runs fn as a protected block that produces a single value. A discarded
// failure yields the zero value.
func Get[T any](ctx context.Context, fn ValueFunc[T], opts ...Option) (T, error) {
	return run(ctx, fn, opts)
}

// Collect runs fn as a protected block that produces a list of values. A
// discarded failure yields a nil slice.
func Collect[T any](ctx context.Context, fn ValueFunc[[]T], opts ...Option) ([]T, error) {
	return run(ctx, fn, opts)
}

// First runs a list-producing block where a single value is wanted: only the
// first value of the block's, or the handler's, result is kept.
func First[T any](ctx context.Context, fn ValueFunc[[]T], opts ...Option) (T, error) {
	vs, err := run(ctx, fn, opts)
	var first T
	if len(vs) > 0 {
		first = vs[0]
	}
	return first, err
}

func run[T any](ctx context.Context, fn ValueFunc[T], opts []Option) (result T, err error) {
	if fn == nil {
		return result, errors.Wrap(ErrUnknownArgument, "nil block")
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return result, err
	}
	handler, err := resolveHandler[T](cfg.handler)
	if err != nil {
		return result, err
	}
	if cfg.hasPrior {
		ctx = NewContext(ctx, cfg.prior)
	}

	defer guard{ctx: ctx, cfg: cfg}.release(&err)

	for attempt := 1; ; attempt++ {
		v, failure, failed := capture(ctx, fn, cfg.propagatePanics)
		if !failed {
			return v, nil
		}

		// Usage errors are never caught
		if _, ok := restartOwner(failure); ok {
			return result, restartMisuse()
		}
		if IsUsage(failure) {
			return result, failure
		}

		if handler == nil {
			for _, hook := range cfg.onSwallow {
				hook(ctx, attempt, failure)
			}
			return result, nil
		}

		v, herr, restart := dispatch(ctx, cfg, handler, attempt, failure)
		if !restart {
			return v, herr
		}

		if cfg.maxRestarts > 0 && attempt > cfg.maxRestarts {
			return result, multierr.Combine(errors.WithStack(ErrRestartsExhausted), failure)
		}

		var delay time.Duration
		if cfg.backoff != nil {
			delay = cfg.backoff.Delay(attempt)
		}
		for _, hook := range cfg.onRestart {
			hook(ctx, attempt, failure, delay)
		}
		if delay > 0 {
			if serr := cfg.clock.Sleep(ctx, delay); serr != nil {
				return result, multierr.Combine(serr, failure)
			}
		}
	}
}

// dispatch runs the handler for one failed attempt. The failure is bound to
// the handler's err parameter and to Current, and the Restarter is active
// only until the handler returns.
func dispatch[T any](ctx context.Context, cfg *config, h ValueHandler[T], attempt int, failure error) (v T, err error, restart bool) {
	for _, hook := range cfg.onCatch {
		hook(ctx, attempt, failure)
	}

	r := newRestarter(attempt)
	defer r.close()
	v, err, failed := capture(withCurrent(ctx, failure), func(ctx context.Context) (T, error) {
		return h(ctx, failure, r)
	}, cfg.propagatePanics)

	if !failed {
		return v, nil, false
	}
	var zero T
	owner, ok := restartOwner(err)
	switch {
	case !ok:
		return zero, err, false
	case owner != r:
		return zero, restartMisuse(), false
	}
	return zero, nil, true
}
