package await_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/await"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/promise"
	"github.com/leonardinius/esvalue/internal/value"
)

func settle(t *testing.T, ag *agent.Agent, v value.Value) *promise.Promise {
	t.Helper()
	p, ok := v.AsObject().(*promise.Promise)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, ag.RunUntilIdle(ctx))
	assert.Equal(t, 0, ag.PendingHostOps())
	return p
}

func TestToPromise(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name      string
		task      func(ctx context.Context) *await.Task
		wantState promise.State
		wantValue string
		wantKind  jserrors.Kind
	}{
		{
			name: "value",
			task: func(ctx context.Context) *await.Task {
				return await.Go(ctx, func(context.Context) (any, error) { return 42, nil })
			},
			wantState: promise.Fulfilled,
			wantValue: "42",
		},
		{
			name: "nil value",
			task: func(ctx context.Context) *await.Task {
				return await.Go(ctx, func(context.Context) (any, error) { return nil, nil })
			},
			wantState: promise.Fulfilled,
			wantValue: "null",
		},
		{
			name: "void",
			task: func(ctx context.Context) *await.Task {
				return await.GoVoid(ctx, func(context.Context) error { return nil })
			},
			wantState: promise.Fulfilled,
			wantValue: "undefined",
		},
		{
			name: "failure",
			task: func(ctx context.Context) *await.Task {
				return await.Go(ctx, func(context.Context) (any, error) { return nil, errors.New("disk on fire") })
			},
			wantState: promise.Rejected,
			wantValue: "Error: disk on fire",
			wantKind:  jserrors.KindError,
		},
		{
			name: "unconvertible",
			task: func(ctx context.Context) *await.Task {
				return await.Go(ctx, func(context.Context) (any, error) { return struct{}{}, nil })
			},
			wantState: promise.Rejected,
			wantValue: "TypeError: Cannot convert host value of type struct {}",
			wantKind:  jserrors.KindTypeError,
		},
		{
			name: "canceled",
			task: func(ctx context.Context) *await.Task {
				ctx, cancel := context.WithCancel(ctx)
				cancel()
				return await.GoVoid(ctx, func(ctx context.Context) error {
					<-ctx.Done()
					return ctx.Err()
				})
			},
			wantState: promise.Rejected,
			wantKind:  jserrors.KindExecutionCanceled,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ag := agent.New(object.NewRealm())
			pv := await.ToPromise(ag, ag.Realm(), tc.task(context.Background()))
			p := settle(t, ag, pv)

			require.Equal(t, tc.wantState, p.State())
			if tc.wantState == promise.Rejected {
				errObj, ok := p.Result().AsObject().(*object.ErrorObject)
				require.True(t, ok)
				assert.Equal(t, tc.wantKind, errObj.ErrorKind())
				if tc.wantValue != "" {
					assert.Equal(t, tc.wantValue, errObj.String())
				}
				return
			}
			assert.Equal(t, tc.wantValue, p.Result().String())
		})
	}
}

func TestCanceledErrorKeepsCause(t *testing.T) {
	t.Parallel()

	ag := agent.New(object.NewRealm())
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	task := await.GoVoid(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	p := settle(t, ag, await.ToPromise(ag, ag.Realm(), task))

	errObj := p.Result().AsObject().(*object.ErrorObject)
	assert.ErrorIs(t, errObj.Cause(), jserrors.ErrExecutionCanceled)
	assert.ErrorIs(t, errObj.Cause(), context.DeadlineExceeded)
}

func TestConvertAwaitable(t *testing.T) {
	t.Parallel()

	ready := make(chan await.Result, 1)
	ready <- await.Result{Value: "from channel"}
	closed := make(chan await.Result)
	close(closed)

	testcases := []struct {
		name      string
		input     any
		ok        bool
		wantState promise.State
		wantValue string
	}{
		{"task", await.Go(context.Background(), func(context.Context) (any, error) { return true, nil }), true, promise.Fulfilled, "true"},
		{"receive channel", (<-chan await.Result)(ready), true, promise.Fulfilled, "from channel"},
		{"closed channel", closed, true, promise.Rejected, "Error: Host channel closed without a result"},
		{"func", func(context.Context) (any, error) { return "computed", nil }, true, promise.Fulfilled, "computed"},
		{"plain value", 42, false, 0, ""},
		{"nil", nil, false, 0, ""},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			ag := agent.New(object.NewRealm())
			pv, ok := await.ConvertAwaitable(ag, ag.Realm(), tc.input)
			require.Equal(t, tc.ok, ok)
			if !ok {
				assert.True(t, pv.IsUndefined())
				return
			}
			p := settle(t, ag, pv)
			require.Equal(t, tc.wantState, p.State())
			assert.Equal(t, tc.wantValue, p.Result().String())
		})
	}
}

func TestSettlementRunsAsJob(t *testing.T) {
	t.Parallel()

	ag := agent.New(object.NewRealm())
	release := make(chan struct{})
	task := await.Go(context.Background(), func(context.Context) (any, error) {
		<-release
		return "late", nil
	})
	p := await.ToPromise(ag, ag.Realm(), task).AsObject().(*promise.Promise)
	assert.Equal(t, 1, ag.PendingHostOps())

	close(release)
	<-task.Done()
	assert.Equal(t, promise.Pending, p.State())

	settle(t, ag, value.ObjectOf(p))
	assert.Equal(t, promise.Fulfilled, p.State())
	assert.Equal(t, "late", p.Result().String())
}
