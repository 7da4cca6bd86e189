package try

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// Restarter is the capability a catch handler receives to run the protected
// block again. It is only valid while that handler is running.
type Restarter struct {
	attempt int
	active  atomic.Bool
}

func newRestarter(attempt int) *Restarter {
	r := &Restarter{attempt: attempt}
	r.active.Store(true)
	return r
}

// Attempt returns the 1-based attempt whose failure is being handled.
func (r *Restarter) Attempt() int {
	if r == nil {
		return 0
	}
	return r.attempt
}

// Restart returns the signal that, returned from the handler, abandons the
// rest of the handler and runs the protected block again:
//
//	try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
//	    if r.Attempt() < 3 {
//	        return r.Restart()
//	    }
//	    return err
//	})
//
// Calling Restart does nothing by itself. The signal takes effect only when
// the handler returns it, possibly wrapped; a helper that calls Restart and
// drops the result leaves the handler's own return value in charge.
//
// Called on a nil Restarter, or after its handler has returned, Restart
// returns ErrRestartOutsideHandler instead.
func (r *Restarter) Restart() error {
	if r == nil || !r.active.Load() {
		return restartMisuse()
	}
	return &restartSignal{owner: r}
}

func (r *Restarter) close() {
	r.active.Store(false)
}

// restartSignal is returned by Restart. Only the dispatcher that created its
// owner accepts it.
type restartSignal struct {
	owner *Restarter
}

func (s *restartSignal) Error() string {
	return "try: restart requested"
}

// restartOwner reports the Restarter behind a restart signal in err.
func restartOwner(err error) (*Restarter, bool) {
	var s *restartSignal
	if errors.As(err, &s) {
		return s.owner, true
	}
	return nil, false
}
