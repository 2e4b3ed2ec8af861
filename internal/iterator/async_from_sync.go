package iterator

import (
	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/promise"
	"github.com/leonardinius/esvalue/internal/value"
)

// asyncFromSync adapts a sync iterator record to the async protocol. Every
// step runs the sync iterator immediately and settles the returned promise.
type asyncFromSync struct {
	object.Ordinary
	ag   *agent.Agent
	sync *Record
}

// NewAsyncFromSync wraps syncRecord into an async iterator record.
func NewAsyncFromSync(ag *agent.Agent, syncRecord *Record) *Record {
	realm := ag.Realm()
	it := &asyncFromSync{
		Ordinary: *object.NewOrdinary(value.ObjectIterator, realm.IteratorPrototype),
		ag:       ag,
		sync:     syncRecord,
	}
	next := it.DefineMethod(realm, "next", object.NativeFunctionVarArgs(func(value.Value, ...value.Value) (value.Value, error) {
		return it.next(), nil
	}))
	it.DefineMethod(realm, "return", object.NativeFunctionVarArgs(func(_ value.Value, args ...value.Value) (value.Value, error) {
		return it.closeWith(keyReturn, args), nil
	}))
	it.DefineMethod(realm, "throw", object.NativeFunctionVarArgs(func(_ value.Value, args ...value.Value) (value.Value, error) {
		return it.closeWith(keyThrow, args), nil
	}))
	return &Record{
		Iterator:   value.ObjectOf(it),
		NextMethod: value.ObjectOf(next),
		Async:      true,
		realm:      realm,
	}
}

func (it *asyncFromSync) rejected(err error) value.Value {
	p := it.ag.NewPromiseCapability()
	p.Reject(it.ag.Realm().ErrorValue(err))
	return p.Value()
}

// continuation resolves v first, so a promise yielded by the sync iterator
// is awaited before the iterator result is produced.
func (it *asyncFromSync) continuation(v value.Value, done bool) value.Value {
	realm := it.ag.Realm()
	unwrap := realm.NewFunction("", object.NativeFunction1(func(_, settled value.Value) (value.Value, error) {
		return value.ObjectOf(realm.CreateIterResult(settled, done)), nil
	}))
	return value.ObjectOf(promise.Resolved(realm, it.ag, v).Then(unwrap, nil))
}

func (it *asyncFromSync) next() value.Value {
	v, done, err := it.sync.stepResult()
	if err != nil {
		return it.rejected(err)
	}
	return it.continuation(v, done)
}

func (it *asyncFromSync) closeWith(key value.Value, args []value.Value) value.Value {
	arg := value.Undefined
	if len(args) > 0 {
		arg = args[0]
	}
	if it.sync.fast != nil || it.sync.Done {
		if value.IsStrictlyEqual(key, keyThrow) {
			it.sync.Done = true
			return it.rejected(value.Throw(arg))
		}
		it.sync.Done = true
		return it.continuation(arg, true)
	}

	method, err := value.GetMethod(it.sync.realm, it.sync.Iterator, key)
	if err != nil {
		return it.rejected(err)
	}
	if method == nil {
		if value.IsStrictlyEqual(key, keyReturn) {
			it.sync.Done = true
			return it.continuation(arg, true)
		}
		closeErr := it.sync.Close(nil)
		if closeErr == nil {
			closeErr = jserrors.TypeError("The iterator does not provide a 'throw' method")
		}
		return it.rejected(closeErr)
	}
	result, err := method.Call(it.sync.Iterator, arg)
	if err != nil {
		return it.rejected(err)
	}
	done, v, err := iterResult(result, true)
	if err != nil {
		return it.rejected(err)
	}
	if done {
		it.sync.Done = true
	}
	return it.continuation(v, done)
}
