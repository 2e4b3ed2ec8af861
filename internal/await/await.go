package await

import (
	"context"
	"errors"
	"fmt"

	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/value"
)

// ToPromise returns a promise settled with the outcome of task. The
// settlement always runs as a job on the agent's engine goroutine.
func ToPromise(ag *agent.Agent, realm *object.Realm, task *Task) value.Value {
	capability := ag.NewPromiseCapability()
	log := ag.Logger().WithField("component", "await")

	ag.BeginHostOp()
	go func() {
		result, err := task.Result()
		ag.Post(func() error {
			if err != nil {
				log.WithError(err).Debug("host task rejected")
				capability.Reject(value.ObjectOf(rejection(realm, err)))
				return nil
			}
			v := value.Undefined
			if !task.IsVoid() {
				var ok bool
				if v, ok = value.FromGo(result); !ok {
					log.WithField("type", typeName(result)).Debug("host task result not convertible")
					capability.Reject(value.ObjectOf(realm.NewError(jserrors.KindTypeError,
						"Cannot convert host value of type "+typeName(result))))
					return nil
				}
			}
			log.Debug("host task fulfilled")
			capability.Resolve(v)
			return nil
		})
		ag.EndHostOp()
	}()

	return capability.Value()
}

func typeName(x any) string {
	return fmt.Sprintf("%T", x)
}

func rejection(realm *object.Realm, err error) *object.ErrorObject {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		cause := fmt.Errorf("%w: %w", jserrors.ErrExecutionCanceled, err)
		return realm.NewErrorFrom(jserrors.ThrowCause(jserrors.KindExecutionCanceled, cause,
			"Host computation canceled: %v", err))
	}
	return realm.NewErrorFrom(err)
}

// ConvertAwaitable turns a host awaitable into a promise. ok is false when x
// is not an awaitable, in which case Undefined is returned.
func ConvertAwaitable(ag *agent.Agent, realm *object.Realm, x any) (value.Value, bool) {
	switch x := x.(type) {
	case *Task:
		return ToPromise(ag, realm, x), true
	case <-chan Result:
		return ToPromise(ag, realm, fromChannel(x)), true
	case chan Result:
		return ToPromise(ag, realm, fromChannel(x)), true
	case func(context.Context) (any, error):
		return ToPromise(ag, realm, Go(context.Background(), x)), true
	}
	return value.Undefined, false
}

func fromChannel(ch <-chan Result) *Task {
	return Go(context.Background(), func(context.Context) (any, error) {
		r, ok := <-ch
		if !ok {
			return nil, jserrors.Throw(jserrors.KindError, "Host channel closed without a result")
		}
		return r.Value, r.Err
	})
}
