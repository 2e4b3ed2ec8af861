package promise

import (
	"fmt"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/value"
)

// State is the settlement state of a promise.
type State int

const (
	Pending State = iota
	Fulfilled
	Rejected
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return "pending"
}

// Scheduler queues reaction jobs. The agent implements it.
type Scheduler interface {
	Enqueue(job func() error)
}

type reaction struct {
	// nil handler passes the settlement through unchanged
	handler value.Callable
	resolve func(value.Value)
	reject  func(value.Value)
}

// Promise is a deferred value settled at most once.
type Promise struct {
	object.Ordinary
	realm            *object.Realm
	sched            Scheduler
	state            State
	result           value.Value
	fulfillReactions []reaction
	rejectReactions  []reaction
	// locked is set while p follows another promise or a thenable
	locked bool
}

func New(realm *object.Realm, sched Scheduler) *Promise {
	return &Promise{
		Ordinary: *object.NewOrdinary(value.ObjectPromise, realm.PromisePrototype),
		realm:    realm,
		sched:    sched,
		result:   value.Undefined,
	}
}

// Resolved returns a promise already fulfilled with v, adopting v when it is a promise.
func Resolved(realm *object.Realm, sched Scheduler, v value.Value) *Promise {
	p := New(realm, sched)
	p.Resolve(v)
	return p
}

// RejectedPromise returns a promise already rejected with reason.
func RejectedPromise(realm *object.Realm, sched Scheduler, reason value.Value) *Promise {
	p := New(realm, sched)
	p.Reject(reason)
	return p
}

func (p *Promise) State() State {
	return p.state
}

// Result returns the fulfillment value or the rejection reason.
func (p *Promise) Result() value.Value {
	return p.result
}

var keyThen = value.Str("then")

// Resolve settles p with v. A promise argument is adopted, and so is any
// object with a callable then method, through a job that calls it.
func (p *Promise) Resolve(v value.Value) {
	if p.state != Pending || p.locked {
		return
	}
	if other, ok := asPromise(v); ok {
		if other == p {
			p.Reject(value.ObjectOf(p.realm.NewError(jserrors.KindTypeError, "Chaining cycle detected for promise")))
			return
		}
		switch other.state {
		case Fulfilled:
			p.fulfill(other.result)
		case Rejected:
			p.Reject(other.result)
		default:
			resolve, reject := p.resolvingFunctions()
			other.addReactions(
				reaction{resolve: resolve, reject: reject},
				reaction{resolve: resolve, reject: reject},
			)
		}
		return
	}
	if o, ok := v.TryObject(); ok {
		then, err := o.Get(keyThen, v)
		if err != nil {
			p.Reject(p.realm.ErrorValue(err))
			return
		}
		if thenFn, ok := value.AsCallable(then); ok {
			p.adoptThenable(v, thenFn)
			return
		}
	}
	p.fulfill(v)
}

// Reject settles p with reason.
func (p *Promise) Reject(reason value.Value) {
	if p.state != Pending || p.locked {
		return
	}
	p.state = Rejected
	p.result = reason
	p.trigger()
}

func (p *Promise) fulfill(v value.Value) {
	p.state = Fulfilled
	p.result = v
	p.trigger()
}

// resolvingFunctions locks p and returns the only pair of functions that can
// still settle it. Only the first call of either has an effect.
func (p *Promise) resolvingFunctions() (resolve, reject func(value.Value)) {
	p.locked = true
	done := false
	resolve = func(v value.Value) {
		if done {
			return
		}
		done = true
		p.locked = false
		p.Resolve(v)
	}
	reject = func(reason value.Value) {
		if done {
			return
		}
		done = true
		p.locked = false
		p.Reject(reason)
	}
	return resolve, reject
}

func (p *Promise) adoptThenable(thenable value.Value, then value.Callable) {
	resolve, reject := p.resolvingFunctions()
	resolveFn := p.realm.NewFunction("", object.NativeFunction1(func(_, v value.Value) (value.Value, error) {
		resolve(v)
		return value.Undefined, nil
	}))
	rejectFn := p.realm.NewFunction("", object.NativeFunction1(func(_, reason value.Value) (value.Value, error) {
		reject(reason)
		return value.Undefined, nil
	}))
	p.sched.Enqueue(func() error {
		if _, err := then.Call(thenable, value.ObjectOf(resolveFn), value.ObjectOf(rejectFn)); err != nil {
			reject(p.realm.ErrorValue(err))
		}
		return nil
	})
}

func (p *Promise) addReactions(onFulfilled, onRejected reaction) {
	p.fulfillReactions = append(p.fulfillReactions, onFulfilled)
	p.rejectReactions = append(p.rejectReactions, onRejected)
	if p.state != Pending {
		p.trigger()
	}
}

func (p *Promise) trigger() {
	reactions := p.fulfillReactions
	if p.state == Rejected {
		reactions = p.rejectReactions
	}
	p.fulfillReactions, p.rejectReactions = nil, nil

	fulfilled, result := p.state == Fulfilled, p.result
	for _, r := range reactions {
		p.sched.Enqueue(func() error {
			if r.handler == nil {
				if fulfilled {
					r.resolve(result)
				} else {
					r.reject(result)
				}
				return nil
			}
			v, err := r.handler.Call(value.Undefined, result)
			if err != nil {
				r.reject(p.realm.ErrorValue(err))
				return nil
			}
			r.resolve(v)
			return nil
		})
	}
}

// Then registers script handlers and returns the derived promise.
func (p *Promise) Then(onFulfilled, onRejected value.Callable) *Promise {
	derived := New(p.realm, p.sched)
	p.addReactions(
		reaction{handler: onFulfilled, resolve: derived.Resolve, reject: derived.Reject},
		reaction{handler: onRejected, resolve: derived.Resolve, reject: derived.Reject},
	)
	return derived
}

// OnSettled registers a host callback run as a job once p settles.
func (p *Promise) OnSettled(fn func(state State, result value.Value)) {
	r := reaction{
		resolve: func(v value.Value) { fn(Fulfilled, v) },
		reject:  func(v value.Value) { fn(Rejected, v) },
	}
	p.addReactions(r, r)
}

// String implements fmt.Stringer.
func (p *Promise) String() string {
	return "[object Promise]"
}

// GoString implements fmt.GoStringer. It shows the settlement state.
func (p *Promise) GoString() string {
	switch p.state {
	case Fulfilled:
		return fmt.Sprintf("Promise { %#v }", p.result)
	case Rejected:
		return fmt.Sprintf("Promise { <rejected> %#v }", p.result)
	}
	return "Promise { <pending> }"
}

func asPromise(v value.Value) (*Promise, bool) {
	o, ok := v.TryObject()
	if !ok {
		return nil, false
	}
	p, ok := o.(*Promise)
	return p, ok
}

// Capability bundles a promise with its resolving functions.
type Capability struct {
	Promise *Promise
	Resolve func(value.Value)
	Reject  func(value.Value)
}

func NewCapability(realm *object.Realm, sched Scheduler) *Capability {
	p := New(realm, sched)
	return &Capability{Promise: p, Resolve: p.Resolve, Reject: p.Reject}
}

// Value returns the promise as a script value.
func (c *Capability) Value() value.Value {
	return value.ObjectOf(c.Promise)
}

var (
	_ value.Object   = (*Promise)(nil)
	_ fmt.Stringer   = (*Promise)(nil)
	_ fmt.GoStringer = (*Promise)(nil)
)
