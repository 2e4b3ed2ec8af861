package promise

import (
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/value"
)

// Install defines Promise.prototype.then and the Promise.resolve and
// Promise.reject statics on realm.
func Install(realm *object.Realm, sched Scheduler) {
	proto := realm.PromisePrototype
	proto.DefineMethod(realm, "then", object.NativeFunction2(func(this, onFulfilled, onRejected value.Value) (value.Value, error) {
		p, ok := asPromise(this)
		if !ok {
			return value.Empty, jserrors.TypeError("Promise.prototype.then called on incompatible receiver %s", this)
		}
		f, _ := value.AsCallable(onFulfilled)
		r, _ := value.AsCallable(onRejected)
		return value.ObjectOf(p.Then(f, r)), nil
	}))
	proto.DefineMethod(realm, "catch", object.NativeFunction1(func(this, onRejected value.Value) (value.Value, error) {
		return value.Invoke(realm, this, value.Str("then"), value.Undefined, onRejected)
	}))
	proto.Define(value.SymbolOf(value.SymbolToStringTag), value.Str("Promise"))

	ctor := realm.NewFunction("Promise", object.NativeFunction0(func(value.Value) (value.Value, error) {
		return value.Empty, jserrors.TypeError("Promise constructor cannot be invoked without 'new'")
	}))
	ctor.Define(value.Str("prototype"), value.ObjectOf(proto))
	proto.Define(value.Str("constructor"), value.ObjectOf(ctor))
	ctor.DefineMethod(realm, "resolve", object.NativeFunction1(func(_, v value.Value) (value.Value, error) {
		if p, ok := asPromise(v); ok {
			return value.ObjectOf(p), nil
		}
		return value.ObjectOf(Resolved(realm, sched, v)), nil
	}))
	ctor.DefineMethod(realm, "reject", object.NativeFunction1(func(_, reason value.Value) (value.Value, error) {
		return value.ObjectOf(RejectedPromise(realm, sched, reason)), nil
	}))
	realm.Globals.Define(value.Str("Promise"), value.ObjectOf(ctor))
}
