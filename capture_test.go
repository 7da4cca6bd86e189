package try_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/try"
)

type codeError struct{ code int }

func (e *codeError) Error() string { return "code error" }

func TestFalsyFailures(t *testing.T) {
	cases := []struct {
		name  string
		block try.Func
		value any
	}{
		{"throw nil", func(ctx context.Context) error { try.Throw(nil); return nil }, nil},
		{"throw empty string", func(ctx context.Context) error { try.Throw(""); return nil }, ""},
		{"throw zero", func(ctx context.Context) error { try.Throw(0); return nil }, 0},
		{"throw false", func(ctx context.Context) error { try.Throw(false); return nil }, false},
		{"throw struct", func(ctx context.Context) error { try.Throw(struct{ A int }{1}); return nil }, struct{ A int }{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handled := 0
			var got error

			err := try.Do(context.Background(), tc.block, try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
				handled++
				got = err
				return nil
			}))

			require.NoError(t, err)
			require.Equal(t, 1, handled)
			require.Error(t, got)
			assert.Equal(t, tc.value, try.ValueOf(got))

			var thrown *try.Thrown
			assert.ErrorAs(t, got, &thrown)
		})
	}

	t.Run("typed nil error", func(t *testing.T) {
		handled := 0
		err := try.Do(context.Background(), func(ctx context.Context) error {
			var e *codeError
			return e
		}, try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
			handled++
			return nil
		}))

		require.NoError(t, err)
		assert.Equal(t, 1, handled)
	})

	t.Run("panic nil", func(t *testing.T) {
		handled := 0
		var got error
		err := try.Do(context.Background(), func(ctx context.Context) error {
			panic(nil)
		}, try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
			handled++
			got = err
			return nil
		}))

		require.NoError(t, err)
		assert.Equal(t, 1, handled)
		var p *try.PanicError
		assert.ErrorAs(t, got, &p)
	})
}

func TestThrow(t *testing.T) {
	t.Run("errors are delivered unwrapped", func(t *testing.T) {
		var got error
		_ = try.Do(context.Background(), func(ctx context.Context) error {
			try.Throw(errTest)
			return nil
		}, try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
			got = err
			return nil
		}))

		assert.Same(t, errTest, got)
		assert.Same(t, errTest, try.ValueOf(got))
	})

	t.Run("structured errors keep their type", func(t *testing.T) {
		var got error
		_ = try.Do(context.Background(), func(ctx context.Context) error {
			try.Throw(&codeError{code: 7})
			return nil
		}, try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
			got = err
			return nil
		}))

		var ce *codeError
		require.ErrorAs(t, got, &ce)
		assert.Equal(t, 7, ce.code)
	})

	t.Run("thrown message names the value", func(t *testing.T) {
		err := &try.Thrown{Value: "oops"}
		assert.Equal(t, `try: thrown "oops"`, err.Error())
	})
}

func TestPanics(t *testing.T) {
	t.Run("captured with the panic value and stack", func(t *testing.T) {
		var got error
		_ = try.Do(context.Background(), func(ctx context.Context) error {
			panic("boom")
		}, try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
			got = err
			return nil
		}))

		var p *try.PanicError
		require.ErrorAs(t, got, &p)
		assert.Equal(t, "boom", p.Value)
		assert.Equal(t, "boom", try.ValueOf(got))
		assert.Contains(t, string(p.Stack), "goroutine")
		assert.Equal(t, "try: panic: boom", p.Error())
	})

	t.Run("error panics unwrap", func(t *testing.T) {
		var got error
		_ = try.Do(context.Background(), func(ctx context.Context) error {
			panic(errTest)
		}, try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
			got = err
			return nil
		}))

		assert.ErrorIs(t, got, errTest)
	})

	t.Run("propagated when requested", func(t *testing.T) {
		handled := false
		assert.PanicsWithValue(t, "boom", func() {
			_ = try.Do(context.Background(), func(ctx context.Context) error {
				panic("boom")
			},
				try.PropagatePanics(),
				try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
					handled = true
					return nil
				}),
			)
		})
		assert.False(t, handled)
	})

	t.Run("throw is still captured when panics propagate", func(t *testing.T) {
		handled := false
		err := try.Do(context.Background(), func(ctx context.Context) error {
			try.Throw("ok")
			return nil
		},
			try.PropagatePanics(),
			try.Catch(func(ctx context.Context, err error, r *try.Restarter) error {
				handled = true
				return nil
			}),
		)

		require.NoError(t, err)
		assert.True(t, handled)
	})
}

func TestValueOf(t *testing.T) {
	plain := errors.New("plain")
	assert.Same(t, plain, try.ValueOf(plain))
	assert.Equal(t, 3, try.ValueOf(errors.Wrap(&try.Thrown{Value: 3}, "context")))
	assert.Nil(t, try.ValueOf(nil))
}
