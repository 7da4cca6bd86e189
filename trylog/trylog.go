// Package trylog logs the lifecycle of protected invocations with zerolog.
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Str("op", "sync").Logger()
//	err := try.Do(ctx, fn, trylog.Hooks(logger), try.Catch(handler))
//
// Catches are logged at debug level, swallowed failures at warn, restarts at
// info, and failed invocations at error. A panic unwinding through an
// invocation is logged as a failure before it resumes.
package trylog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/bjaus/try"
)

// Log messages.
const (
	MsgCaught    = "try: failure caught"
	MsgSwallowed = "try: failure discarded"
	MsgRestart   = "try: restarting"
	MsgFailed    = "try: invocation failed"
	MsgFinished  = "try: invocation finished"
)

// Hooks returns an option that logs every lifecycle event to logger.
func Hooks(logger zerolog.Logger) try.Option {
	return try.Use(try.New(
		try.OnCatch(func(ctx context.Context, attempt int, err error) {
			logger.Debug().Err(err).Int("attempt", attempt).Msg(MsgCaught)
		}),
		try.OnSwallow(func(ctx context.Context, attempt int, err error) {
			logger.Warn().Err(err).Int("attempt", attempt).Msg(MsgSwallowed)
		}),
		try.OnRestart(func(ctx context.Context, attempt int, err error, delay time.Duration) {
			logger.Info().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg(MsgRestart)
		}),
		try.OnFinally(func(ctx context.Context, err error) {
			if err != nil {
				logger.Error().
					Err(err).
					Bool("usage", try.IsUsage(err)).
					Bool("panic", errors.As(err, new(*try.PanicError))).
					Msg(MsgFailed)
				return
			}
			logger.Debug().Msg(MsgFinished)
		}),
	))
}
