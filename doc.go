// Package try provides structured try/catch/finally control flow with
// restarts.
//
// try is a control-flow package that provides:
//
//   - Protected Blocks: Run a function and capture its failure, whether it returns an error, calls Throw, or panics
//   - Catch Handlers: Recover with a replacement result, fail, or restart the block
//   - Finalizers: Run exactly once however the invocation is left
//   - Restart Capability: Restarts are only possible from the handler that owns the Restarter
//   - Explicit Prior Error: The caller's prior error travels in the context, never in global state
//   - Lifecycle Hooks: OnCatch, OnSwallow, OnRestart, OnFinally for observability
//
// # Quick Start
//
// Discard a failure:
//
//	_ = try.Do(ctx, func(ctx context.Context) error {
//	    return cache.Warm(ctx)
//	})
//
// Without a catch clause the failure is swallowed and Do returns nil.
//
// Catch, restart, and clean up:
//
//	err := try.Do(ctx, func(ctx context.Context) error {
//	    return conn.Send(ctx, msg)
//	},
//	    try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
//	        if r.Attempt() < 3 && reconnect(ctx) == nil {
//	            return r.Restart()
//	        }
//	        return err
//	    }),
//	    try.Finally(func(ctx context.Context) error {
//	        return conn.Flush(ctx)
//	    }),
//	)
//
// # Arity
//
// The entry point fixes the shape of the result for the whole invocation,
// including every restart and the handler's result:
//
//	try.Do(ctx, fn, ...)      // no value
//	try.Get(ctx, fn, ...)     // one value; zero value when a failure is swallowed
//	try.Collect(ctx, fn, ...) // a list; nil when a failure is swallowed
//	try.First(ctx, fn, ...)   // a list-producing block where one value is wanted
//
// Do takes a Catch clause. Get, Collect, and First take a CatchValue clause of
// the matching type. A clause of the wrong kind fails fast with
// ErrUnknownArgument before anything runs.
//
// # Failures
//
// A block fails when it returns a non-nil error or does not return normally.
// Throw accepts a value of any shape:
//
//	try.Throw("")   // still a failure
//	try.Throw(nil)  // still a failure
//
// Errors reach the handler as they are. Other thrown values arrive as *Thrown,
// and other panics arrive as *PanicError, unless PropagatePanics is set.
// ValueOf returns the original value.
//
// # Restarts
//
// A handler restarts the block by returning r.Restart(). The Restarter is
// only valid while its handler runs. Using it from the block, a finalizer, a
// construct nested inside the handler, or after the handler returned yields
// ErrRestartOutsideHandler. Usage errors always reach the caller.
//
// Restarts are unbounded by default. WithMaxRestarts bounds them, and
// WithBackoff paces them:
//
//	policy := try.New(
//	    try.WithMaxRestarts(5),
//	    try.WithBackoff(try.WithJitter(0.2, try.Exponential(50*time.Millisecond))),
//	)
//
// # Prior Error
//
// The block and handler see the caller's prior error through Prior, and the
// handler sees the failure it handles through Current:
//
//	ctx = try.NewContext(ctx, lastErr)
//	try.Do(ctx, fn, try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
//	    // try.Prior(ctx) == lastErr, try.Current(ctx) == err
//	    return nil
//	}))
//
// # Finalizer Failures
//
// By default the last failure wins: a failing finalizer replaces the error in
// flight. WithJoinedErrors combines them instead. A usage error in flight is
// never replaced.
//
// # Observability
//
// Hooks append, so several observers can be installed. The trylog and
// trymetrics subpackages provide zerolog and Prometheus observers.
package try
