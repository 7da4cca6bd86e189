package try

import (
	"math"
	"math/rand"
	"time"
)

// Backoff returns the pause taken before the restart that follows the given
// failed attempt (1-based).
type Backoff interface {
	Delay(attempt int) time.Duration
}

// BackoffFunc adapts a function to Backoff.
type BackoffFunc func(attempt int) time.Duration

// Delay implements Backoff.
func (f BackoffFunc) Delay(attempt int) time.Duration {
	return f(attempt)
}

// Constant pauses for d before every restart.
func Constant(d time.Duration) Backoff {
	return BackoffFunc(func(int) time.Duration {
		return d
	})
}

// Exponential pauses for base * 2^(attempt-1), saturating at the largest
// Duration instead of wrapping.
func Exponential(base time.Duration) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		if attempt <= 1 || base <= 0 {
			return base
		}
		shift := uint(attempt - 1)
		if shift >= 63 || base > time.Duration(math.MaxInt64>>shift) {
			return time.Duration(math.MaxInt64)
		}
		return base << shift
	})
}

// WithCap limits the pauses of b to the range [0, limit].
func WithCap(limit time.Duration, b Backoff) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		return max(0, min(b.Delay(attempt), limit))
	})
}

// WithJitter spreads the pauses of b by ±factor (0.2 means ±20%).
func WithJitter(factor float64, b Backoff) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		d := b.Delay(attempt)
		if factor <= 0 {
			return d
		}
		jittered := float64(d) + (rand.Float64()*2-1)*float64(d)*factor
		switch {
		case jittered <= 0:
			return 0
		case jittered >= math.MaxInt64:
			return time.Duration(math.MaxInt64)
		}
		return time.Duration(jittered)
	})
}
