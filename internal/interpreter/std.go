package interpreter

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/leonardinius/esvalue/internal/await"
	"github.com/leonardinius/esvalue/internal/iterator"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/value"
	"github.com/leonardinius/esvalue/internal/weak"
)

// installStd defines the probe globals on top of the realm intrinsics.
func installStd(i *interpreter) {
	weak.Install(i.ag)

	define := func(name string, fn object.Native) {
		i.realm.Globals.Define(value.Str(name), value.ObjectOf(i.realm.NewFunction(name, fn)))
	}

	define("clock", object.NativeFunction0(i.stdFnClock))
	define("pprint", object.NativeFunctionVarArgs(i.stdFnPPrint))
	define("SameValue", object.NativeFunction2(func(_, a, b value.Value) (value.Value, error) {
		return value.Bool(value.SameValue(a, b)), nil
	}))
	define("SameValueZero", object.NativeFunction2(func(_, a, b value.Value) (value.Value, error) {
		return value.Bool(value.SameValueZero(a, b)), nil
	}))
	define("clone", object.NativeFunction1(func(_, v value.Value) (value.Value, error) {
		return v.Clone(), nil
	}))
	define("gc", object.NativeFunction0(i.stdFnGC))
	define("iterate", object.NativeFunction1(i.stdFnIterate))
	define("delay", object.NativeFunction2(i.stdFnDelay))
}

func (i *interpreter) stdFnClock(value.Value) (value.Value, error) {
	return value.Int(time.Now().UnixMilli()), nil
}

func (i *interpreter) stdFnPPrint(_ value.Value, args ...value.Value) (value.Value, error) {
	parts := make([]string, len(args))
	for idx, arg := range args {
		s, err := i.display(arg)
		if err != nil {
			return value.Empty, err
		}
		parts[idx] = s
	}
	_, _ = fmt.Fprintln(i.stdout, strings.Join(parts, " "))
	return value.Undefined, nil
}

// stdFnGC runs a full collection. Objects kept alive by WeakRef.prototype.deref
// during the current job stay reachable until the job ends.
func (i *interpreter) stdFnGC(value.Value) (value.Value, error) {
	runtime.GC()
	runtime.GC()
	i.log.WithField("kept", i.ag.KeptObjects()).Debug("gc requested")
	return value.Undefined, nil
}

// stdFnIterate collects the values produced by the iterator of v into an array.
func (i *interpreter) stdFnIterate(_, v value.Value) (value.Value, error) {
	values, err := iterator.Collect(i.ag, v)
	if err != nil {
		return value.Empty, err
	}
	return value.ObjectOf(i.realm.NewArray(values...)), nil
}

// maxDelay is the longest representable wait; longer delays are clamped.
const maxDelay = time.Duration(math.MaxInt64)

// stdFnDelay returns a promise that a host goroutine fulfills with v after ms
// milliseconds. Canceling the context of the running Interpret call rejects
// it with an ExecutionCanceledError.
func (i *interpreter) stdFnDelay(_, ms, v value.Value) (value.Value, error) {
	n, err := value.ToNumber(ms)
	if err != nil {
		return value.Empty, err
	}
	if n != n || n < 0 {
		return value.Empty, jserrors.RangeError("Invalid delay %s", ms)
	}
	wait := maxDelay
	if n < float64(maxDelay/time.Millisecond) {
		wait = time.Duration(n * float64(time.Millisecond))
	}

	task := await.Go(i.hostCtx, func(ctx context.Context) (any, error) {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
			return v, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	return await.ToPromise(i.ag, i.realm, task), nil
}
