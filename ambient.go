package try

import "context"

type (
	priorKey   struct{}
	currentKey struct{}
)

// NewContext returns a copy of ctx carrying err as the prior error: the error
// the caller already had when it entered a protected block. Blocks and
// handlers read it with Prior.
func NewContext(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, priorKey{}, err)
}

// Prior returns the prior error carried by ctx, or nil.
func Prior(ctx context.Context) error {
	err, _ := ctx.Value(priorKey{}).(error)
	return err
}

// Current returns the failure being handled. It is only set in the context
// passed to a catch handler.
func Current(ctx context.Context) error {
	err, _ := ctx.Value(currentKey{}).(error)
	return err
}

func withCurrent(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, currentKey{}, err)
}
