package try

import "github.com/pkg/errors"

// Usage errors. These report a caller mistake rather than a failure of the
// protected work, so the runner never catches, swallows, or restarts on them.
var (
	// ErrRestartOutsideHandler is returned when a restart is requested
	// anywhere other than the top level of the handler that owns the
	// Restarter.
	ErrRestartOutsideHandler = errors.New("try: restart called outside the top scope of a catch handler")

	// ErrUnknownArgument is returned when a handler-position argument is
	// nil or does not match the arity of the entry point it was passed to.
	ErrUnknownArgument = errors.New("try: unknown handler-position argument")

	// ErrDuplicateCatch is returned when more than one catch clause is given.
	ErrDuplicateCatch = errors.New("try: more than one catch clause")
)

// ErrRestartsExhausted is combined with the last failure when a handler
// requests more restarts than WithMaxRestarts allows.
var ErrRestartsExhausted = errors.New("try: restarts exhausted")

// IsUsage reports whether err is, or wraps, one of the usage errors.
func IsUsage(err error) bool {
	return errors.Is(err, ErrRestartOutsideHandler) ||
		errors.Is(err, ErrUnknownArgument) ||
		errors.Is(err, ErrDuplicateCatch)
}

func restartMisuse() error {
	return errors.WithStack(ErrRestartOutsideHandler)
}
