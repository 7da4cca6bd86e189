package try

import (
	"context"
	"time"
)

// Clock sleeps between restarts. Inject a fake one in tests.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

var defaultClock Clock = realClock{}

// realClock sleeps on a timer and wakes early when ctx is done.
type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
