package iterator

import (
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

// Hint selects between the sync and async iteration protocols.
type Hint int

const (
	Sync Hint = iota
	Async
)

// String implements fmt.Stringer.
func (h Hint) String() string {
	if h == Async {
		return "async"
	}
	return "sync"
}

var (
	keyNext   = value.Str("next")
	keyReturn = value.Str("return")
	keyThrow  = value.Str("throw")
	keyDone   = value.Str("done")
	keyValue  = value.Str("value")
)

// Record is an Iterator Record. A string iterated through the fast path has
// no protocol objects behind it.
type Record struct {
	Iterator   value.Value
	NextMethod value.Value
	Done       bool
	// Async is set when NextMethod returns promises.
	Async bool

	realm value.Realm
	fast  *StringIterator
}

// IsFastPath reports whether r iterates a string without the protocol.
func (r *Record) IsFastPath() bool {
	return r.fast != nil
}

// Step advances a sync iterator. ok is false once the iterator is done.
func (r *Record) Step() (v value.Value, ok bool, err error) {
	v, done, err := r.step(false)
	return v, !done && err == nil, err
}

// stepResult is Step for callers that observe the value of the final
// {value, done: true} result as well.
func (r *Record) stepResult() (v value.Value, done bool, err error) {
	return r.step(true)
}

func (r *Record) step(valueOnDone bool) (v value.Value, done bool, err error) {
	if r.Done {
		return value.Undefined, true, nil
	}
	if r.Async {
		return value.Empty, true, jserrors.TypeError("Step called on an async iterator record")
	}
	if r.fast != nil {
		v, ok := r.fast.Next()
		r.Done = !ok
		return v, !ok, nil
	}
	result, err := value.Call(r.NextMethod, r.Iterator)
	if err != nil {
		r.Done = true
		return value.Empty, true, err
	}
	done, v, err = iterResult(result, valueOnDone)
	if err != nil {
		r.Done = true
		return value.Empty, true, err
	}
	if done {
		r.Done = true
	}
	return v, done, nil
}

// NextAsync calls the next method of an async iterator and returns its promise.
func (r *Record) NextAsync() (value.Value, error) {
	if !r.Async {
		return value.Empty, jserrors.TypeError("NextAsync called on a sync iterator record")
	}
	return value.Call(r.NextMethod, r.Iterator)
}

// Close implements IteratorClose. cause is the completion that ended the
// iteration; it takes precedence over failures of the return method.
func (r *Record) Close(cause error) error {
	r.Done = true
	if r.fast != nil {
		return cause
	}
	ret, err := value.GetMethod(r.realm, r.Iterator, keyReturn)
	if err != nil {
		if cause != nil {
			return cause
		}
		return err
	}
	if ret == nil {
		return cause
	}
	result, err := ret.Call(r.Iterator)
	if cause != nil {
		return cause
	}
	if err != nil {
		return err
	}
	if !result.IsObject() {
		return jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrIteratorResultNotObject,
			"Iterator result %s is not an object", result)
	}
	return nil
}

// iterResult reads an iterator result object. The value of a done result
// is only read when valueOnDone is set; otherwise it is Undefined.
func iterResult(result value.Value, valueOnDone bool) (done bool, v value.Value, err error) {
	o, ok := result.TryObject()
	if !ok {
		return false, value.Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrIteratorResultNotObject,
			"Iterator result %s is not an object", result)
	}
	d, err := o.Get(keyDone, result)
	if err != nil {
		return false, value.Empty, err
	}
	if d.ToBoolean() && !valueOnDone {
		return true, value.Undefined, nil
	}
	v, err = o.Get(keyValue, result)
	return d.ToBoolean(), v, err
}
