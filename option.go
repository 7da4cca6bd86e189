package try

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// OnCatchFunc is called before a failure is handed to the catch handler.
type OnCatchFunc func(ctx context.Context, attempt int, err error)

// OnSwallowFunc is called when a failure is discarded because no catch
// handler was given.
type OnSwallowFunc func(ctx context.Context, attempt int, err error)

// OnRestartFunc is called when a handler restarts, before the backoff sleep.
type OnRestartFunc func(ctx context.Context, attempt int, err error, delay time.Duration)

// OnFinallyFunc is called once per invocation after the finalizers ran, with
// the error the caller is about to receive.
type OnFinallyFunc func(ctx context.Context, err error)

// config holds all try configuration.
type config struct {
	// Policy-level options
	backoff         Backoff
	clock           Clock
	maxRestarts     int
	joinErrors      bool
	propagatePanics bool

	// Call-level options
	handler    any
	finalizers []Finalizer
	prior      error
	hasPrior   bool

	onCatch   []OnCatchFunc
	onSwallow []OnSwallowFunc
	onRestart []OnRestartFunc
	onFinally []OnFinallyFunc

	// first usage error found while applying options
	err error
}

// Option configures a protected invocation.
type Option func(*config)

func newConfig(opts []Option) (*config, error) {
	cfg := &config{clock: defaultClock}
	for i, opt := range opts {
		if opt == nil {
			return nil, errors.Wrapf(ErrUnknownArgument, "option %d is nil", i)
		}
		opt(cfg)
		if cfg.err != nil {
			return nil, cfg.err
		}
	}
	return cfg, nil
}

func (c *config) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// WithBackoff sets the delay applied before each restart.
// Without it, restarts happen immediately.
func WithBackoff(b Backoff) Option {
	return func(c *config) {
		c.backoff = b
	}
}

// WithClock sets the clock used for backoff sleeps. Useful for testing.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithMaxRestarts bounds the number of restarts. When a handler asks for one
// more, the invocation fails with ErrRestartsExhausted combined with the last
// failure. Zero or less means unbounded.
func WithMaxRestarts(n int) Option {
	return func(c *config) {
		c.maxRestarts = n
	}
}

// WithJoinedErrors makes finalizer failures combine with the failure already
// in flight instead of replacing it.
func WithJoinedErrors() Option {
	return func(c *config) {
		c.joinErrors = true
	}
}

// PropagatePanics lets panics that did not come from Throw pass through
// unchanged instead of being captured as *PanicError.
func PropagatePanics() Option {
	return func(c *config) {
		c.propagatePanics = true
	}
}

// WithPrior sets the prior error seen by the block and handler for this call,
// overriding the one carried by the context.
func WithPrior(err error) Option {
	return func(c *config) {
		c.prior = err
		c.hasPrior = true
	}
}

// OnCatch adds a hook called before each handler invocation.
func OnCatch(fn OnCatchFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.onCatch = append(c.onCatch, fn)
		}
	}
}

// OnSwallow adds a hook called when a failure is discarded.
func OnSwallow(fn OnSwallowFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.onSwallow = append(c.onSwallow, fn)
		}
	}
}

// OnRestart adds a hook called on each restart.
func OnRestart(fn OnRestartFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.onRestart = append(c.onRestart, fn)
		}
	}
}

// OnFinally adds a hook called once the invocation is about to return.
func OnFinally(fn OnFinallyFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.onFinally = append(c.onFinally, fn)
		}
	}
}

// Use applies every option of p.
func Use(p *Policy) Option {
	return func(c *config) {
		if p == nil {
			c.fail(errors.Wrap(ErrUnknownArgument, "nil policy"))
			return
		}
		for i, opt := range p.opts {
			if opt == nil {
				c.fail(errors.Wrapf(ErrUnknownArgument, "policy option %d is nil", i))
				return
			}
			opt(c)
		}
	}
}
